package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// course keywords in match order; the first contained key wins
var courseKeywords = []struct{ key, code string }{
	{"cse", "CSE"},
	{"computer science", "CSE"},
	{"cs", "CSE"},
	{"it", "IT"},
	{"information technology", "IT"},
	{"ece", "ECE"},
	{"electronics", "ECE"},
	{"eee", "EEE"},
	{"electrical", "EEE"},
	{"mech", "MECH"},
	{"mechanical", "MECH"},
	{"civil", "CIVIL"},
}

// Categories are matched as upper-case substrings in this order, so "MBC"
// is reported as BC.
var Categories = []string{"OC", "BC", "MBC", "SC", "ST"}

var rankPattern = regexp.MustCompile(`\b\d{1,6}\b`)

// Entities are the query parameters found in a message.
type Entities struct {
	Course   string
	Category string
	Rank     int
}

func (e Entities) Any() bool { return e.Course != "" || e.Category != "" || e.Rank > 0 }

func Extract(text string) Entities {
	return Entities{
		Course:   ExtractCourse(text),
		Category: ExtractCategory(text),
		Rank:     ExtractRank(text),
	}
}

func ExtractCourse(text string) string {
	text = strings.ToLower(text)
	for _, c := range courseKeywords {
		if strings.Contains(text, c.key) {
			return c.code
		}
	}
	return ""
}

func ExtractCategory(text string) string {
	text = strings.ToUpper(text)
	for _, c := range Categories {
		if strings.Contains(text, c) {
			return c
		}
	}
	return ""
}

// ExtractRank returns the first standalone number of up to six digits, or 0.
func ExtractRank(text string) int {
	m := rankPattern.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
