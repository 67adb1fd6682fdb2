package profile

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var (
	validate = newValidator()

	yearMonthRe = regexp.MustCompile(`^\d{4}(-(0[1-9]|1[0-2]))?$`)

	decodeFieldRe    = regexp.MustCompile(`^'([^']*)'`)
	decodeExpectedRe = regexp.MustCompile(`expected (?:type '([^']+)'|an? (\w+))`)
	decodeValueRe    = regexp.MustCompile(`value: '(.*)'$`)
)

// Entry is one element of a profile category list.
type Entry interface {
	Category() Category
}

func (WorkExperience) Category() Category { return CategoryWork }
func (Project) Category() Category        { return CategoryProject }
func (Education) Category() Category      { return CategoryEducation }
func (Skill) Category() Category          { return CategorySkill }

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Canonical dates are YYYY-MM, or YYYY when the month is unknown.
	if err := v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		return yearMonthRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	// Stored text is trimmed with inner whitespace collapsed, and lists hold no empty items.
	if err := v.RegisterValidation("tidy", tidy); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("unique_fold", uniqueFold); err != nil {
		panic(err)
	}

	return v
}

func tidy(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		s := field.String()
		return s == collapseSpace(s)
	case reflect.Slice:
		for i := 0; i < field.Len(); i++ {
			item := field.Index(i)
			if item.Kind() != reflect.String {
				return false
			}
			s := item.String()
			if s == "" || s != collapseSpace(s) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// uniqueFold rejects lists holding the same term twice in different casing.
func uniqueFold(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	seen := make(map[string]bool, field.Len())
	for i := 0; i < field.Len(); i++ {
		key := foldCase(field.Index(i).String())
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// Decode builds a MasterProfile from an untyped mapping. Field names are accepted in
// camelCase or snake_case, unknown fields are ignored and every violation is reported.
// Decode does not normalize; run Normalize first on extracted data.
func Decode(raw map[string]any) (*MasterProfile, error) {
	var p MasterProfile
	if err := decode("profile", canonicalProfileKeys(raw), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeEntry builds a single entry of the given category from an untyped mapping.
func DecodeEntry(c Category, raw map[string]any) (Entry, error) {
	raw = canonicalEntryKeys(c, raw)

	switch c {
	case CategoryWork:
		var e WorkExperience
		if err := decode(c.String(), raw, &e); err != nil {
			return nil, err
		}
		return e, nil
	case CategoryProject:
		var e Project
		if err := decode(c.String(), raw, &e); err != nil {
			return nil, err
		}
		return e, nil
	case CategoryEducation:
		var e Education
		if err := decode(c.String(), raw, &e); err != nil {
			return nil, err
		}
		return e, nil
	case CategorySkill:
		var e Skill
		if err := decode(c.String(), raw, &e); err != nil {
			return nil, err
		}
		return e, nil
	}

	return nil, fmt.Errorf("unknown category %d", c)
}

// Validate checks an already typed profile against the schema rules.
func Validate(p *MasterProfile) error {
	if p == nil {
		return &SchemaViolation{
			Entity:     "profile",
			Violations: []Violation{{Field: "profile", Rule: "required"}},
		}
	}

	if violations := structViolations(p, nil); len(violations) > 0 {
		return &SchemaViolation{Entity: "profile", Violations: violations}
	}
	return nil
}

func decode(entity string, raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: numberToStringHook,
	})
	if err != nil {
		return fmt.Errorf("build %s decoder: %w", entity, err)
	}

	var violations []Violation
	if err := dec.Decode(raw); err != nil {
		var decodeErr *mapstructure.Error
		if !errors.As(err, &decodeErr) {
			return fmt.Errorf("decode %s: %w", entity, err)
		}
		violations = append(violations, typeViolations(decodeErr)...)
	}

	violations = append(violations, structViolations(out, violations)...)
	if len(violations) > 0 {
		return &SchemaViolation{Entity: entity, Violations: violations}
	}
	return nil
}

// numberToStringHook lets numeric scalars (postal codes, phone numbers, scores) land in
// string fields. Every other type mismatch is left to the decoder to report.
func numberToStringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}

	switch v := data.(type) {
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return data, nil
}

func typeViolations(err *mapstructure.Error) []Violation {
	violations := make([]Violation, 0, len(err.Errors))
	for _, msg := range err.Errors {
		v := Violation{Field: "(root)", Rule: "type"}

		if m := decodeFieldRe.FindStringSubmatch(msg); m != nil && m[1] != "" {
			v.Field = m[1]
		}

		switch m := decodeExpectedRe.FindStringSubmatch(msg); {
		case m != nil && m[1] != "":
			v.Param = m[1]
		case m != nil:
			v.Param = m[2]
		case strings.Contains(msg, "array or slice"):
			v.Param = "array"
		}

		if m := decodeValueRe.FindStringSubmatch(msg); m != nil {
			v.Value = m[1]
		}

		violations = append(violations, v)
	}
	return violations
}

// structViolations runs the tag based rules. Fields that already failed decoding are
// skipped so a wrong type is not reported a second time as missing.
func structViolations(target any, known []Violation) []Violation {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Violation{{Field: "(root)", Rule: "invalid", Value: err.Error()}}
	}

	seen := make(map[string]bool, len(known))
	for _, v := range known {
		seen[v.Field] = true
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx != -1 {
			field = field[idx+1:]
		}
		if seen[field] {
			continue
		}
		violations = append(violations, Violation{
			Field: field,
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return violations
}
