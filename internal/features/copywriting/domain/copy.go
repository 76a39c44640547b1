package domain

import (
	"slices"
	"strings"
)

// CopySection is one titled block of the marketing copy.
type CopySection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GeneratedCopy is the model-produced marketing copy for one language: a main
// title and an ordered list of titled sections. The first section is the
// cultural introduction by construction of the prompt.
type GeneratedCopy struct {
	MainTitle string        `json:"mainTitle"`
	Sections  []CopySection `json:"sections"`
}

// Clone returns a deep copy so callers can splice titles copy-on-write.
func (c GeneratedCopy) Clone() GeneratedCopy {
	return GeneratedCopy{MainTitle: c.MainTitle, Sections: slices.Clone(c.Sections)}
}

// PlainText flattens the copy into the clipboard-ready form: the main title,
// then each section as "title\ncontent", separated by blank lines.
func (c GeneratedCopy) PlainText() string {
	var sb strings.Builder
	sb.WriteString(c.MainTitle)
	for _, s := range c.Sections {
		sb.WriteString("\n\n")
		sb.WriteString(s.Title)
		sb.WriteString("\n")
		sb.WriteString(s.Content)
	}
	return sb.String()
}

// InputType selects which ProductInput variant is active.
type InputType string

const (
	InputURL    InputType = "url"
	InputText   InputType = "text"
	InputImages InputType = "images"
)

// ImageFile is one uploaded product image.
type ImageFile struct {
	Data     []byte
	MIMEType string
}

// ProductInput is the source material for one generation request. Exactly one
// variant is populated, selected by Type.
type ProductInput struct {
	Type   InputType
	URL    string
	Text   string
	Images []ImageFile
}

// CopySession holds the transient bilingual result of one generation cycle.
// The keywords and brief description are captured at generation time so title
// regeneration reuses the constraints the copy was built under.
type CopySession struct {
	ID               string         `json:"id"`
	Korean           *GeneratedCopy `json:"korean_copy"`
	English          *GeneratedCopy `json:"english_copy"`
	RequiredKeywords []string       `json:"required_keywords"`
	BriefDescription string         `json:"brief_description"`
}
