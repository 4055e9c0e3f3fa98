package leveltest

// Question is one multiple-choice item; Correct is never sent to clients
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"-"`
}

var questions = []Question{
	{
		ID:      1,
		Text:    "I _____ to the market yesterday.",
		Options: []string{"go", "went", "going", "will go"},
		Correct: 1,
	},
	{
		ID:   2,
		Text: "Choose the correct sentence:",
		Options: []string{
			"He don't like coffee",
			"He doesn't like coffee",
			"He not like coffee",
			"He isn't like coffee",
		},
		Correct: 1,
	},
	{
		ID:      3,
		Text:    "The meeting has been _____ to next week.",
		Options: []string{"postponed", "postpone", "postponing", "postpones"},
		Correct: 0,
	},
	{
		ID:      4,
		Text:    "If I _____ you, I would study harder.",
		Options: []string{"am", "was", "were", "will be"},
		Correct: 2,
	},
	{
		ID:   5,
		Text: "Choose the most appropriate response: 'Could you help me with this?'",
		Options: []string{
			"Yes, I could",
			"Of course, I'd be happy to help",
			"Maybe I will",
			"I think so",
		},
		Correct: 1,
	},
	{
		ID:      6,
		Text:    "The project was completed _____ the deadline.",
		Options: []string{"ahead of", "ahead from", "before of", "in front"},
		Correct: 0,
	},
	{
		ID:   7,
		Text: "Which sentence is most formal?",
		Options: []string{
			"Can you send me the report?",
			"Could you please send me the report?",
			"Would you be so kind as to send me the report?",
			"Send me the report, please.",
		},
		Correct: 2,
	},
	{
		ID:   8,
		Text: "The word 'comprehensive' means:",
		Options: []string{
			"difficult to understand",
			"including everything",
			"very expensive",
			"requiring much time",
		},
		Correct: 1,
	},
	{
		ID:   9,
		Text: "Choose the correct passive voice: 'The team completed the project.'",
		Options: []string{
			"The project completed by the team",
			"The project was completed by the team",
			"The project has completed by the team",
			"The project is completed by the team",
		},
		Correct: 1,
	},
	{
		ID:   10,
		Text: "In a business presentation, which phrase is most appropriate to introduce a new topic?",
		Options: []string{
			"Now I want to talk about...",
			"Let's move on to...",
			"I would like to draw your attention to...",
			"Next thing is...",
		},
		Correct: 2,
	},
}

// TotalQuestions is the fixed length of the test
var TotalQuestions = len(questions)

// Questions returns a copy of the question list in presentation order
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Level is the proficiency bucket derived from the percentage
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// Recommendation is the fixed advice shown for a level
type Recommendation struct {
	Level       string   `json:"level"`
	Description string   `json:"description"`
	Programs    []string `json:"programs"`
}

var recommendations = map[Level]Recommendation{
	Beginner: {
		Level:       "Beginner",
		Description: "You have a basic understanding of English but need to build confidence and fluency.",
		Programs:    []string{"Big Group Classes", "Small Group Classes"},
	},
	Intermediate: {
		Level:       "Intermediate",
		Description: "You can communicate in English but want to improve fluency and professional communication.",
		Programs:    []string{"Small Group Classes", "1:1 Classes"},
	},
	Advanced: {
		Level:       "Advanced",
		Description: "You communicate well in English and want to polish your skills for leadership and presentations.",
		Programs:    []string{"1:1 Classes", "Leadership Training"},
	},
}

// RecommendationFor returns the advice for a level
func RecommendationFor(l Level) Recommendation {
	r := recommendations[l]
	r.Programs = append([]string(nil), r.Programs...)
	return r
}
