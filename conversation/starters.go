package conversation

// StarterPrompts are offered on an empty session as quick conversation
// openers.
func StarterPrompts() []string {
	return []string{"Coding Help", "Study Plan", "Exam Dates"}
}
