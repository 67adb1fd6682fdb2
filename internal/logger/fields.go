package logger

import (
	"strings"

	"github.com/spigell/resume-mate/internal/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldProfile holds the locator of the master profile being worked on.
	FieldProfile = "profile"
	// FieldSource holds the path of the source document.
	FieldSource = "source"
	FieldMerge  = "merge"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields. Keys and values are trimmed
// and pairs with an empty side are dropped.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields describes the AI provider and model. Empty values are skipped.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// ProfileFields describes the profile locator and the source document of a command.
func ProfileFields(locator, source string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProfile, Value: locator},
		StringField{Key: FieldSource, Value: source},
	)
}

// MergeReport renders a merge report as a nested object keyed by profile section.
func MergeReport(report profile.MergeReport) zap.Field {
	return zap.Object(FieldMerge, mergeReport(report))
}

type mergeReport profile.MergeReport

func (r mergeReport) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, c := range profile.Categories {
		stats, ok := r[c]
		if !ok {
			continue
		}
		if err := enc.AddObject(c.Key(), categoryReport(stats)); err != nil {
			return err
		}
	}
	return nil
}

type categoryReport profile.CategoryReport

func (r categoryReport) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("matched", r.Matched)
	enc.AddInt("added", r.Added)
	enc.AddInt("collapsed", r.Collapsed)
	return nil
}
