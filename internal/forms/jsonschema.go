package forms

import (
	"encoding/json"
	"fmt"
)

const schemaDialect = "http://json-schema.org/draft-07/schema#"

// JSONSchema renders a form's fields as a draft-07 JSON Schema document
func JSONSchema(name Name) ([]byte, error) {
	fields, ok := Describe(name)
	if !ok {
		return nil, fmt.Errorf("unknown form %q", name)
	}

	properties := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))

	for _, f := range fields {
		properties[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}

	doc := map[string]any{
		"$schema":    schemaDialect,
		"$id":        "/api/v1/forms/" + string(name) + "/schema.json",
		"title":      string(name),
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
	return json.Marshal(doc)
}

func fieldSchema(f Field) map[string]any {
	s := map[string]any{}
	if f.Message != "" {
		s["description"] = f.Message
	}

	switch f.Kind {
	case KindFlag:
		s["type"] = "boolean"
		if f.MustBeTrue {
			s["const"] = true
		}
		return s
	case KindSet:
		s["type"] = "array"
		if f.MinItems > 0 {
			s["minItems"] = f.MinItems
		}
		s["items"] = map[string]any{"type": "string", "enum": optionValues(f.Options)}
		return s
	}

	s["type"] = "string"
	switch f.Kind {
	case KindChoice:
		values := optionValues(f.Options)
		if !f.Required {
			// blank means not chosen
			values = append(values, "")
		}
		s["enum"] = values
	case KindMobile:
		s["pattern"] = f.Pattern
	case KindEmail:
		s["format"] = "email"
	case KindNumeric:
		s["pattern"] = `^([0-9]+(\.[0-9]+)?)?$`
	}
	if f.MinLength > 0 {
		s["minLength"] = f.MinLength
	}
	return s
}

func optionValues(opts []Option) []any {
	values := make([]any, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}
