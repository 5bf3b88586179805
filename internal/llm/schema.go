package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
)

// SchemaField is one property of a structured response.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
}

// ResponseSchema describes a flat JSON object the model must return.
// All fields are required.
type ResponseSchema struct {
	Name   string
	Fields []SchemaField
}

func (s *ResponseSchema) required() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// JSONSchema renders s as a JSON Schema document.
func (s *ResponseSchema) JSONSchema() json.RawMessage {
	props := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = map[string]any{
			"type":        string(f.Type),
			"description": f.Description,
		}
	}
	doc := map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             s.required(),
		"additionalProperties": false,
	}
	data, _ := json.Marshal(doc)
	return data
}

// Instruction is a plain-text rendering for providers without a schema mode.
func (s *ResponseSchema) Instruction() string {
	var b strings.Builder
	b.WriteString("Respond ONLY with a JSON object and no other text. Fields:\n")
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "- %q (%s): %s\n", f.Name, f.Type, f.Description)
	}
	return b.String()
}
