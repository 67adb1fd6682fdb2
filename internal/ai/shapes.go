package ai

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/resume-mate/internal/profile"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	shapeProfile     = "profile"
	shapeAnalysis    = "analysis"
	shapeSuggestions = "suggestions"
)

func loadSchema(name string) (map[string]any, error) {
	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("load %s schema: %w", name, err)
	}

	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", name, err)
	}
	return schema, nil
}

func loadShape(name string) (Shape, error) {
	schema, err := loadSchema(name)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Name: name, Schema: schema}, nil
}

// EntryShape is the shape of a single entry of category c.
func EntryShape(c profile.Category) (Shape, error) {
	return loadShape(c.String())
}

// ProfileShape is the shape of a whole master profile.
func ProfileShape() (Shape, error) {
	basics, err := loadSchema("basics")
	if err != nil {
		return Shape{}, err
	}

	properties := map[string]any{"basics": basics}
	for _, c := range profile.Categories {
		item, err := loadSchema(c.String())
		if err != nil {
			return Shape{}, err
		}
		properties[c.Key()] = map[string]any{
			"type":  "array",
			"items": item,
		}
	}

	return Shape{
		Name: shapeProfile,
		Schema: map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   []any{"basics"},
		},
	}, nil
}

// conform checks payload against the shape schema.
func conform(shape Shape, payload map[string]any) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(shape.Schema), gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("validate %s payload: %w", shape.Name, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%s payload does not match schema: %s", shape.Name, strings.Join(problems, "; "))
}

func decodeInto(payload map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(payload)
}
