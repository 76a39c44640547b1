package domain

// CustomTranslation is a directed literal substitution rule applied during
// Korean-to-English translation, e.g. '당초' → 'dangcho'.
type CustomTranslation struct {
	ID      string `json:"id"`
	Korean  string `json:"korean"`
	English string `json:"english"`
}
