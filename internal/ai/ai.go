// Package ai is the boundary between resume-mate and the language model that extracts,
// tailors and reviews profile data.
package ai

import (
	"context"
	"fmt"
)

// Attachment is binary source material sent along with the prompt, such as the original PDF.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Shape names the JSON structure the model must answer with.
type Shape struct {
	Name   string
	Schema map[string]any
}

type Request struct {
	// Instructions is the system instruction for the model.
	Instructions string
	Prompt       string
	Attachments  []Attachment
	Shape        Shape
}

// Generator produces an untyped JSON payload for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (map[string]any, error)
}

// GenerationFailure reports that the model did not produce usable output for Op.
type GenerationFailure struct {
	Op    string
	Cause error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Cause)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Cause
}

// JobAnalysis is the structured reading of a job description.
type JobAnalysis struct {
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	RoleMission     string   `json:"role_mission"`
	Keywords        []string `json:"keywords"`
}

// Suggestions is a review of a master profile.
type Suggestions struct {
	Gaps              []string `json:"gaps"`
	Suggestions       []string `json:"suggestions"`
	RecommendedSkills []string `json:"recommended_skills"`
	OverallCritique   string   `json:"overall_critique"`
}
