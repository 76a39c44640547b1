package domain

// LearningItem is one block of free-text background knowledge. The full list
// is flattened into the "learning context" that grounds the introductory
// section of every generated copy.
type LearningItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
