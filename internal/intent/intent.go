// Package intent classifies chat messages with an ordered keyword ladder and
// builds replies, from the cutoff table where the message names enough to
// query it.
package intent

import "strings"

type Tag string

const (
	Greeting             Tag = "greeting"
	CollegeSearch        Tag = "college_search"
	Courses              Tag = "courses"
	SafeDreamTarget      Tag = "safe_dream_target"
	AdmissionProbability Tag = "admission_probability"
	Cutoff               Tag = "cutoff"
	Fees                 Tag = "fees"
	Eligibility          Tag = "eligibility"
	AdmissionProcess     Tag = "admission_process"
	Reservation          Tag = "reservation"
	Trends               Tag = "trends"
	Thanks               Tag = "thanks"
	Goodbye              Tag = "goodbye"
	Default              Tag = "default"
)

// Rule fires when the lower-cased message contains any phrase in Any and,
// if AlsoAny is set, also one of AlsoAny. Matching is plain substring
// containment, so "hi" fires inside "this".
type Rule struct {
	Tag     Tag
	Any     []string
	AlsoAny []string
}

func (r Rule) matches(text string) bool {
	if !containsAny(text, r.Any) {
		return false
	}
	return len(r.AlsoAny) == 0 || containsAny(text, r.AlsoAny)
}

var courseMentions = []string{"cse", "it", "ece", "eee", "mech", "mechanical", "civil", "computer science", "information technology"}

// Rules is evaluated top to bottom and the first match wins. The order is
// part of the behavior: course mentions outrank cutoff keywords and the
// college-search phrases outrank course mentions.
var Rules = []Rule{
	{Tag: Greeting, Any: []string{"hi", "hello", "hey", "greetings", "good morning", "good afternoon"}},
	{Tag: CollegeSearch, Any: []string{"find college", "show college", "recommend college", "suggest college", "list college"}},
	{Tag: Courses, Any: courseMentions, AlsoAny: []string{"course", "branch", "available", "what is"}},
	{Tag: CollegeSearch, Any: courseMentions},
	{Tag: SafeDreamTarget, Any: []string{"safe college", "dream college", "target college", "categorize"}},
	{Tag: AdmissionProbability, Any: []string{"admission probability", "my chances", "will i get", "can i get", "probability"}},
	{Tag: Cutoff, Any: []string{"cutoff", "rank", "score", "marks"}},
	{Tag: Fees, Any: []string{"fee", "cost", "tuition", "fees", "scholarship"}},
	{Tag: Eligibility, Any: []string{"eligible", "eligibility", "qualify", "criteria"}},
	{Tag: AdmissionProcess, Any: []string{"process", "apply", "application", "admission"}},
	{Tag: Reservation, Any: []string{"reservation", "category", "bc", "sc", "st", "obc", "mbc"}},
	{Tag: Trends, Any: []string{"trend", "historical", "previous year", "past data"}},
	{Tag: Thanks, Any: []string{"thank", "thanks", "appreciate"}},
	{Tag: Goodbye, Any: []string{"bye", "goodbye", "see you", "exit", "quit"}},
}

// Classify returns the tag of the first matching rule, or Default.
func Classify(text string) Tag {
	return ClassifyWith(Rules, text)
}

func ClassifyWith(rules []Rule, text string) Tag {
	text = strings.ToLower(text)
	for _, r := range rules {
		if r.matches(text) {
			return r.Tag
		}
	}
	return Default
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
