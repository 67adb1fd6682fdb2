package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-mate/internal/ai"
	"github.com/spigell/resume-mate/internal/ai/gemini"
	"github.com/spigell/resume-mate/internal/extract"
	"github.com/spigell/resume-mate/internal/logger"
	"github.com/spigell/resume-mate/internal/profile"
	"github.com/spigell/resume-mate/internal/render"
	"github.com/spigell/resume-mate/internal/secrets"
	"github.com/spigell/resume-mate/internal/store"
)

// session holds what every command needs: a logger, the config and the profile store.
type session struct {
	ctx    context.Context
	logger *zap.Logger
	config *Config
	store  store.Store
}

func newSession() *session {
	ctx := context.Background()

	logger, err := logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("log-file"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	s3Opts, err := s3Options(config.S3)
	if err != nil {
		logger.Fatal("loading s3 credentials", zap.Error(err))
	}

	st, err := store.Open(ctx, config.Profile, s3Opts)
	if err != nil {
		logger.Fatal("opening the profile store", zap.Error(err), zap.String("profile", config.Profile))
	}

	return &session{
		ctx:    ctx,
		logger: logger.With(zap.String("profile", st.Locator())),
		config: config,
		store:  st,
	}
}

func s3Options(cfg *S3Config) (store.S3Options, error) {
	accessKey, err := secrets.Optional(secrets.Source{
		Name:  "s3 access key",
		Value: cfg.AccessKey,
		File:  cfg.AccessKeyFile,
	})
	if err != nil {
		return store.S3Options{}, err
	}

	secretKey, err := secrets.Optional(secrets.Source{
		Name:  "s3 secret key",
		Value: cfg.SecretKey,
		File:  cfg.SecretKeyFile,
	})
	if err != nil {
		return store.S3Options{}, err
	}

	return store.S3Options{
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     accessKey,
		SecretAccessKey: secretKey,
	}, nil
}

// load reads the canonical profile and terminates on failure.
func (s *session) load() *profile.MasterProfile {
	p, err := store.Load(s.ctx, s.store)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Fatal("profile not found", zap.String("hint", "run 'resume-mate init' or 'resume-mate bootstrap <file>' first"))
		}
		s.fatal("loading the profile", err)
	}
	return p
}

func (s *session) save(p *profile.MasterProfile) {
	if err := store.Save(s.ctx, s.store, p); err != nil {
		s.fatal("saving the profile", err)
	}
}

func (s *session) assistant() *ai.Assistant {
	cfg := s.config.AI
	if provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider != "" && provider != "gemini" {
		s.logger.Fatal("unsupported ai provider", zap.String("provider", cfg.Provider), zap.String("hint", "only gemini is supported"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		s.logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or GEMINI_API_KEY_FILE environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	generator, err := gemini.NewGenerator(s.ctx, gemini.Options{
		APIKey:       apiKey,
		Model:        cfg.Gemini.Model,
		MaxRetries:   cfg.Gemini.MaxRetries,
		MaxLogLength: cfg.Gemini.MaxLogLength,
	}, s.logger)
	if err != nil {
		s.logger.Fatal("creating gemini generator", zap.Error(err))
	}

	return ai.NewAssistant(generator, logger.WithCommonFields(s.logger, "gemini", generator.Model()), cfg.Gemini.MaxLogLength)
}

// source extracts the text of a document and, when vision is on, the document itself.
func (s *session) source(path string) (string, []ai.Attachment) {
	log := s.logger.With(logger.ProfileFields("", path)...)

	text, err := extract.Text(path)
	if err != nil {
		s.fatal("extracting text", err, logger.ProfileFields("", path)...)
	}
	log.Info("text extracted", zap.Int("length", len(text)))

	files, err := extract.Attachments(path, s.config.AI.Vision)
	if err != nil {
		s.fatal("reading attachments", err, logger.ProfileFields("", path)...)
	}

	attachments := make([]ai.Attachment, 0, len(files))
	for _, f := range files {
		attachments = append(attachments, ai.Attachment{MIMEType: f.MIMEType, Data: f.Data})
	}
	if len(attachments) > 0 {
		log.Info("attaching the original document", zap.Int("count", len(attachments)))
	}

	return text, attachments
}

func (s *session) renderer(theme string) *render.Renderer {
	if strings.TrimSpace(theme) == "" {
		theme = s.config.Theme
	}
	r, err := render.New(theme, s.config.ThemesDir)
	if err != nil {
		s.logger.Fatal("loading the theme", zap.Error(err), zap.Strings("available", render.Themes(s.config.ThemesDir)))
	}
	return r
}

// buildPDF renders p with r and writes the PDF to output.
func (s *session) buildPDF(r *render.Renderer, p *profile.MasterProfile, output string) {
	html, err := r.HTML(p)
	if err != nil {
		s.fatal("rendering html", err)
	}

	s.logger.Info("printing pdf", zap.String("theme", r.Theme()), zap.String("output", output))
	pdf, err := render.PDF(s.ctx, html, render.PDFOptions{ExecPath: s.config.ChromePath})
	if err != nil {
		s.logger.Fatal("printing pdf", zap.Error(err), zap.String("hint", "Chrome or Chromium must be installed, or set 'chrome-path'"))
	}

	if err := writeOutput(output, pdf); err != nil {
		s.logger.Fatal("writing pdf", zap.Error(err))
	}
}

// confirm asks a yes/no question unless --yes was given.
func (s *session) confirm(label string) bool {
	if viper.GetBool("yes") {
		return true
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			s.logger.Fatal("exiting", zap.Error(err))
		}
		return false
	}
	return true
}

// fatal logs err with any violation details it carries and exits.
func (s *session) fatal(step string, err error, fields ...zap.Field) {
	var violation *profile.SchemaViolation
	if errors.As(err, &violation) {
		for _, v := range violation.Violations {
			s.logger.Error("schema violation",
				zap.String("entity", violation.Entity),
				zap.String("field", v.Field),
				zap.String("rule", v.Rule),
				zap.Any("value", v.Value),
			)
		}
	}

	var normalization *profile.NormalizationError
	if errors.As(err, &normalization) {
		fields = append(fields, zap.String("field", normalization.Field), zap.Any("value", normalization.Value))
	}

	var unsupported *extract.UnsupportedFormat
	if errors.As(err, &unsupported) {
		fields = append(fields, zap.String("hint", "supported formats: .txt .md .pdf .docx .html"))
	}

	s.logger.Fatal(step, append(fields, zap.Error(err))...)
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
