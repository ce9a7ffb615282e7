// Package transcribe bridges dictated audio to the structured medical
// fields the consultation form expects.
package transcribe

import "context"

// Fields is the structured extraction from a transcript. Absent fields
// stay empty; the form treats empty as "not dictated".
type Fields struct {
	Symptoms     string `json:"symptoms"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

// Result pairs the raw transcript with its extraction.
type Result struct {
	Text     string `json:"text"`
	Analysis Fields `json:"analysis"`
}

// Engine converts audio to text and text to structured fields.
type Engine interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
	Analyze(ctx context.Context, text string) (Fields, error)
}
