package profile

import (
	"fmt"
	"strings"
)

// Violation describes a single field that failed validation.
type Violation struct {
	Field string
	Rule  string
	Param string
	Value any
}

func (v Violation) String() string {
	rule := v.Rule
	if v.Param != "" {
		rule = fmt.Sprintf("%s=%s", v.Rule, v.Param)
	}
	if v.Value == nil || v.Value == "" {
		return fmt.Sprintf("%s: %s", v.Field, rule)
	}
	return fmt.Sprintf("%s: %s (got %v)", v.Field, rule, v.Value)
}

// SchemaViolation is returned when an entity cannot be constructed. It lists every
// offending field, not just the first one.
type SchemaViolation struct {
	Entity     string
	Violations []Violation
}

func (e *SchemaViolation) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("schema violation in %s:", e.Entity))
	for _, v := range e.Violations {
		sb.WriteString("\n  - ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

// Fields returns the paths of all offending fields.
func (e *SchemaViolation) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// Has reports whether the field failed with the given rule. An empty rule matches any rule.
func (e *SchemaViolation) Has(field, rule string) bool {
	for _, v := range e.Violations {
		if v.Field == field && (rule == "" || v.Rule == rule) {
			return true
		}
	}
	return false
}

// NormalizationError is returned when a raw value cannot be coerced into its canonical form.
type NormalizationError struct {
	Field string
	Value any
	Cause error
}

func (e *NormalizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("normalization error: %s: cannot normalize %q: %v", e.Field, fmt.Sprint(e.Value), e.Cause)
	}
	return fmt.Sprintf("normalization error: %s: cannot normalize %q", e.Field, fmt.Sprint(e.Value))
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// InvalidProfile is returned when an operation refuses to run because one of its
// input profiles does not validate.
type InvalidProfile struct {
	Role  string
	Cause error
}

func (e *InvalidProfile) Error() string {
	return fmt.Sprintf("invalid %s profile: %v", e.Role, e.Cause)
}

func (e *InvalidProfile) Unwrap() error {
	return e.Cause
}
