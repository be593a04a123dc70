package intent

// Templates holds the canned replies per tag. Every Tag has at least one.
var Templates = map[Tag][]string{
	Greeting: {
		"Hello! I'm here to help you with college admissions. Ask me about cutoffs, chances or colleges for your rank.",
		"Hi there! I can help you find colleges based on your rank, course preference and category.",
		"Welcome to CampusMate! Ask me about college cutoffs, admission chances, or get personalized recommendations.",
	},
	AdmissionProcess: {
		"The admission process typically involves: 1) Check eligibility, 2) Take entrance exams, 3) Submit applications, 4) Attend counseling.",
		"First, make sure you meet the eligibility criteria. Then prepare for the entrance exams and submit your application before the deadline.",
	},
	Cutoff: {
		"I can provide cutoff information! Tell me your course (CSE/IT/ECE/EEE/MECH/CIVIL), category (OC/BC/MBC/SC/ST) and year.",
		"Cutoff ranks vary by college, course and category. Share your preferences and I'll pull the numbers from the cutoff history.",
		"What course and category are you interested in? I'll summarize the historical cutoffs for you.",
	},
	Fees: {
		"Fee structures vary a lot. Government colleges: ₹30,000-₹80,000/year. Private colleges: ₹80,000-₹3,00,000/year.",
		"Most engineering colleges charge between ₹50,000 and ₹2,50,000 per year. Government colleges are more affordable.",
		"Scholarships are available for SC/ST/BC categories, and many private colleges offer merit scholarships.",
	},
	Eligibility: {
		"Basic eligibility: pass 12th with Physics, Chemistry and Mathematics, plus a valid entrance exam score.",
		"Most colleges require at least 50% in 12th (45% for reserved categories) and a valid entrance exam rank.",
		"Requirements vary by course and institution, so check the college website for the exact rules.",
	},
	SafeDreamTarget: {
		"Based on your rank I can sort colleges into Safe (cutoff well above your rank), Target (near your rank) and Dream (a stretch).",
		"Share your rank, course and category and I'll build Safe, Target and Dream lists from the cutoff history!",
		"A balanced list is roughly 40% safe, 40% target and 20% dream colleges. Want me to find them for you?",
	},
	AdmissionProbability: {
		"I can estimate your admission chances! Tell me your rank, course, category and the college you're interested in.",
		"Share your rank and preferences and I'll compare them against historical cutoffs.",
		"Probability depends on historical cutoffs, your rank, category and course. Give me your details for an estimate.",
	},
	Reservation: {
		"Categories: OC (Open), BC (Backward Class), MBC (Most Backward Class), SC (Scheduled Caste), ST (Scheduled Tribe).",
		"Reserved categories have separate cutoff ranks, and the cutoff history keeps each category apart.",
		"Tell me your category (OC/BC/MBC/SC/ST) and I'll show you the relevant cutoffs and colleges!",
	},
	CollegeSearch: {
		"Tell me your rank, course (CSE/IT/ECE/EEE/MECH/CIVIL) and category and I'll search the colleges for you.",
		"Looking for specific colleges? Share your criteria and I'll find matching options.",
		"Want college recommendations? Give me your rank, course and category and I'll find the best matches!",
	},
	Courses: {
		"Available courses: CSE (Computer Science), IT (Information Technology), ECE (Electronics), EEE (Electrical), MECH (Mechanical), CIVIL.",
		"CSE and IT are in high demand. ECE and EEE focus on electronics. MECH and CIVIL are the core engineering branches.",
		"Each course has different cutoffs. Which one interests you? I can show specific cutoff data!",
	},
	Trends: {
		"Cutoff trends show how cutoffs moved over the years in the history table.",
		"Historical data helps anticipate future cutoffs. Popular branches like CSE and IT have been getting more competitive.",
		"Want trend analysis for a specific college or course? Tell me and I'll pull the data!",
	},
	Thanks: {
		"You're welcome! Feel free to ask about more colleges or admission queries.",
		"Happy to help! I'm here if you need more college information or predictions.",
		"Glad I could assist! Come back anytime for admission guidance.",
	},
	Goodbye: {
		"Goodbye! Best of luck with your admissions! 🎓",
		"Take care! We're here to help with your college journey.",
		"Best wishes! Feel free to return with more questions anytime.",
	},
	Default: {
		"I can help with college recommendations, cutoff information, admission probability, course details and more!",
		"Try asking: 'Show me colleges for CSE with rank 25000' or 'What's the cutoff for IT in OC category?'",
		"Ask me about cutoffs, admission chances, courses (CSE/IT/ECE/EEE/MECH/CIVIL) or categories.",
	},
}
