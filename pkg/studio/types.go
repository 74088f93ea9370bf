package studio

import "time"

// Collection is one uploaded-document collection owned by the user.
type Collection struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	TotalChars int       `json:"totalChars"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ReinforcementItem is a derived study artifact (mind map, quiz, MCQ
// set, flashcards) attached to a collection. The payload under Data is
// artifact-specific; the mind map client decodes it separately.
type ReinforcementItem struct {
	ID         string    `json:"_id"`
	Type       string    `json:"type"`
	SourceType string    `json:"sourceType"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"createdAt"`
}
