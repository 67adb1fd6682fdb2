package ai

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-mate/internal/profile"
	"github.com/spigell/resume-mate/internal/utils"
	"go.uber.org/zap"
)

const (
	defaultMaxLogLength = 200
	defaultLanguage     = "English"

	parserInstructions  = "You are an expert resume parser. You extract resume data into structured JSON."
	analystInstructions = "You are an expert technical recruiter and resume strategist."
	writerInstructions  = "You are a professional resume writer."
	criticInstructions  = "You are a senior resume consultant and a professional resume critic."
)

var (
	//go:embed prompts/bootstrap.md
	bootstrapPrompt string
	//go:embed prompts/extract.md
	extractPrompt string
	//go:embed prompts/entry.md
	entryPrompt string
	//go:embed prompts/analyze.md
	analyzePrompt string
	//go:embed prompts/tailor.md
	tailorPrompt string
	//go:embed prompts/suggest.md
	suggestPrompt string
)

// Assistant turns documents into profile data with the help of a Generator.
// Every payload it returns has passed profile validation.
type Assistant struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewAssistant(generator Generator, logger *zap.Logger, maxLogLength int) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Assistant{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Bootstrap builds a new master profile from the text of a resume.
func (a *Assistant) Bootstrap(ctx context.Context, text string, attachments []Attachment) (*profile.MasterProfile, error) {
	return a.profileFromSource(ctx, "bootstrap", bootstrapPrompt, text, attachments)
}

// Extract reads a resume into a candidate profile for merging into an existing one.
func (a *Assistant) Extract(ctx context.Context, text string, attachments []Attachment) (*profile.MasterProfile, error) {
	return a.profileFromSource(ctx, "extract", extractPrompt, text, attachments)
}

func (a *Assistant) profileFromSource(ctx context.Context, op, template, text string, attachments []Attachment) (*profile.MasterProfile, error) {
	if strings.TrimSpace(text) == "" && len(attachments) == 0 {
		return nil, fmt.Errorf("%s: source document has no text", op)
	}

	shape, err := ProfileShape()
	if err != nil {
		return nil, err
	}

	payload, err := a.generate(ctx, op, Request{
		Instructions: parserInstructions,
		Prompt:       fill(template, "{{SOURCE_TEXT}}", text),
		Attachments:  attachments,
		Shape:        shape,
	})
	if err != nil {
		return nil, err
	}

	return profile.FromMap(payload)
}

// ExtractEntry turns a free-form description into a single validated entry of category c.
func (a *Assistant) ExtractEntry(ctx context.Context, c profile.Category, description string) (profile.Entry, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("extract %s: description is empty", c)
	}

	shape, err := EntryShape(c)
	if err != nil {
		return nil, err
	}

	payload, err := a.generate(ctx, "extract "+c.String(), Request{
		Instructions: fmt.Sprintf("You extract %s data into structured JSON.", c),
		Prompt:       fill(entryPrompt, "{{CATEGORY}}", c.String(), "{{DESCRIPTION}}", description),
		Shape:        shape,
	})
	if err != nil {
		return nil, err
	}

	return profile.NewEntry(c, payload)
}

// AnalyzeJob extracts skills, keywords and the mission of the role from a job description.
func (a *Assistant) AnalyzeJob(ctx context.Context, jobDescription string) (*JobAnalysis, error) {
	const op = "analyze job"
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%s: job description is empty", op)
	}

	var analysis JobAnalysis
	err := a.generateInto(ctx, op, shapeAnalysis, Request{
		Instructions: analystInstructions,
		Prompt:       fill(analyzePrompt, "{{JOB_DESCRIPTION}}", jobDescription),
	}, &analysis)
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Tailor returns a job-specific variant of p. Contact details, company names, positions
// and dates are always taken from p.
func (a *Assistant) Tailor(ctx context.Context, p *profile.MasterProfile, analysis *JobAnalysis, language string) (*profile.MasterProfile, error) {
	const op = "tailor"
	if err := profile.Validate(p); err != nil {
		return nil, &profile.InvalidProfile{Role: "existing", Cause: err}
	}
	if analysis == nil {
		return nil, fmt.Errorf("%s: job analysis is required", op)
	}
	if language = strings.TrimSpace(language); language == "" {
		language = defaultLanguage
	}

	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job analysis: %w", err)
	}

	shape, err := ProfileShape()
	if err != nil {
		return nil, err
	}

	payload, err := a.generate(ctx, op, Request{
		Instructions: writerInstructions,
		Prompt: fill(tailorPrompt,
			"{{ANALYSIS_JSON}}", string(analysisJSON),
			"{{PROFILE_JSON}}", string(profileJSON),
			"{{LANGUAGE}}", language,
		),
		Shape: shape,
	})
	if err != nil {
		return nil, err
	}

	payload, err = withContactDetails(payload, p)
	if err != nil {
		return nil, err
	}

	tailored, err := profile.FromMap(payload)
	if err != nil {
		return nil, err
	}

	restoreWorkFacts(tailored, p)
	return tailored, nil
}

// Suggest reviews p and reports gaps and possible improvements.
func (a *Assistant) Suggest(ctx context.Context, p *profile.MasterProfile) (*Suggestions, error) {
	if err := profile.Validate(p); err != nil {
		return nil, &profile.InvalidProfile{Role: "existing", Cause: err}
	}

	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	var suggestions Suggestions
	err = a.generateInto(ctx, "suggest", shapeSuggestions, Request{
		Instructions: criticInstructions,
		Prompt:       fill(suggestPrompt, "{{PROFILE_JSON}}", string(profileJSON)),
	}, &suggestions)
	if err != nil {
		return nil, err
	}
	return &suggestions, nil
}

func (a *Assistant) generate(ctx context.Context, op string, req Request) (map[string]any, error) {
	if a == nil || a.generator == nil {
		return nil, &GenerationFailure{Op: op, Cause: errors.New("generator is not configured")}
	}

	a.logger.Debug("ai generate request",
		zap.String("op", op),
		zap.String("shape", req.Shape.Name),
		zap.Int("attachments", len(req.Attachments)),
		zap.Int("prompt_length", utf8.RuneCountInString(req.Prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(req.Prompt, a.maxLogLen)),
	)

	payload, err := a.generator.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationFailure{Op: op, Cause: err}
	}
	if len(payload) == 0 {
		return nil, &GenerationFailure{Op: op, Cause: errors.New("empty payload")}
	}

	a.logger.Debug("ai generate response",
		zap.String("op", op),
		zap.Int("fields", len(payload)),
	)
	return payload, nil
}

// generateInto requests a payload of the named free-form shape and decodes it into out.
func (a *Assistant) generateInto(ctx context.Context, op, shapeName string, req Request, out any) error {
	shape, err := loadShape(shapeName)
	if err != nil {
		return err
	}
	req.Shape = shape

	payload, err := a.generate(ctx, op, req)
	if err != nil {
		return err
	}
	if err := conform(shape, payload); err != nil {
		return &GenerationFailure{Op: op, Cause: err}
	}
	if err := decodeInto(payload, out); err != nil {
		return &GenerationFailure{Op: op, Cause: fmt.Errorf("decode %s: %w", shape.Name, err)}
	}
	return nil
}

func fill(template string, pairs ...string) string {
	prompt := template
	for i := 0; i+1 < len(pairs); i += 2 {
		prompt = strings.ReplaceAll(prompt, pairs[i], strings.TrimSpace(pairs[i+1]))
	}
	return prompt
}

// withContactDetails replaces the basics of a tailored payload with those of the original
// profile, keeping only the rewritten label and summary.
func withContactDetails(payload map[string]any, original *profile.MasterProfile) (map[string]any, error) {
	originalMap, err := profile.ToMap(original)
	if err != nil {
		return nil, err
	}

	basics, _ := originalMap["basics"].(map[string]any)
	if tailored, ok := payload["basics"].(map[string]any); ok {
		for _, key := range []string{"label", "summary"} {
			if value, ok := tailored[key]; ok {
				basics[key] = value
			}
		}
	}

	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	out["basics"] = basics
	return out, nil
}

func restoreWorkFacts(tailored, original *profile.MasterProfile) {
	matcher := profile.NewMatcher(profile.DefaultMatchThreshold)
	for i, w := range tailored.Work {
		idx, ok := profile.Find(matcher, w, original.Work)
		if !ok {
			continue
		}
		source := original.Work[idx]
		tailored.Work[i].Name = source.Name
		tailored.Work[i].Position = source.Position
		tailored.Work[i].StartDate = source.StartDate
		tailored.Work[i].EndDate = source.EndDate
	}
}
