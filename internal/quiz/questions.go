package quiz

// Option is one selectable answer for a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is one quiz question with its options.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Options  []Option `json:"options"`
}

// Questions is the static quiz served to clients. Question and option ids
// are stable: the option-to-persona mapping and stored answers both key on
// them.
var Questions = []Question{
	{
		ID:       "q1",
		Text:     "What excites you most in a group?",
		Category: "Group Role",
		Options: []Option{
			{ID: "q1a", Text: "Building something new"},
			{ID: "q1b", Text: "Creative expression"},
			{ID: "q1c", Text: "Exploring new places"},
			{ID: "q1d", Text: "Connecting people"},
		},
	},
	{
		ID:       "q2",
		Text:     "What would you pick for a weekend activity?",
		Category: "Weekend Vibes",
		Options: []Option{
			{ID: "q2a", Text: "Hackathon or startup event"},
			{ID: "q2b", Text: "Art or fashion workshop"},
			{ID: "q2c", Text: "Hiking / travel"},
			{ID: "q2d", Text: "Volunteering / community event"},
		},
	},
	{
		ID:       "q3",
		Text:     "What type of content do you consume most?",
		Category: "Content Preference",
		Options: []Option{
			{ID: "q3a", Text: "Tech / entrepreneurship videos"},
			{ID: "q3b", Text: "Design / fashion / aesthetics"},
			{ID: "q3c", Text: "Travel / exploration vlogs"},
			{ID: "q3d", Text: "Social issues / activism"},
		},
	},
	{
		ID:       "q4",
		Text:     "What role do you tend to take in group work?",
		Category: "Role Preference",
		Options: []Option{
			{ID: "q4a", Text: "Visionary / idea person"},
			{ID: "q4b", Text: "Designer / creative"},
			{ID: "q4c", Text: "Curious explorer"},
			{ID: "q4d", Text: "Connector / communicator"},
		},
	},
	{
		ID:       "q5",
		Text:     "You prefer clubs that are:",
		Category: "Group Preference",
		Options: []Option{
			{ID: "q5a", Text: "Innovation-focused"},
			{ID: "q5b", Text: "Creativity-focused"},
			{ID: "q5c", Text: "Globally curious"},
			{ID: "q5d", Text: "Community-focused"},
		},
	},
	{
		ID:       "q6",
		Text:     "Which outcome matters more to you?",
		Category: "Outcome Preference",
		Options: []Option{
			{ID: "q6a", Text: "Launching ideas"},
			{ID: "q6b", Text: "Expressing identity"},
			{ID: "q6c", Text: "Gaining experiences"},
			{ID: "q6d", Text: "Helping others"},
		},
	},
}

// LookupQuestion returns the question with the given id.
func LookupQuestion(id string) (Question, bool) {
	for _, q := range Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// LookupOption returns the question and option for an option id.
func LookupOption(questionID, optionID string) (Question, Option, bool) {
	q, ok := LookupQuestion(questionID)
	if !ok {
		return Question{}, Option{}, false
	}
	for _, o := range q.Options {
		if o.ID == optionID {
			return q, o, true
		}
	}
	return Question{}, Option{}, false
}
