package models

import "time"

// AssessmentSession pairs the live worksheet with its response history.
// A session must not be driven by more than one caller concurrently;
// each submission is expected to complete before the next is issued.
type AssessmentSession struct {
	ID        string            `json:"id"`
	Context   AssessmentContext `json:"context"`
	Worksheet *Worksheet        `json:"worksheet,omitempty"`
	History   ResponseHistory   `json:"history"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
