package forms

import (
	"reflect"
	"strconv"
	"strings"
)

// Kind is the input shape of a field
type Kind string

const (
	KindText    Kind = "text"
	KindEmail   Kind = "email"
	KindMobile  Kind = "mobile"
	KindChoice  Kind = "choice"
	KindSet     Kind = "set"
	KindFlag    Kind = "flag"
	KindURL     Kind = "url"
	KindNumeric Kind = "numeric"
)

// Field is the constraint set of one form field
type Field struct {
	Name      string   `json:"name"`
	Kind      Kind     `json:"kind"`
	Required  bool     `json:"required"`
	MinLength int      `json:"minLength,omitempty"`
	MinItems  int      `json:"minItems,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Enum      string   `json:"enum,omitempty"`
	Options   []Option `json:"options,omitempty"`
	// MustBeTrue marks consent gates
	MustBeTrue bool   `json:"mustBeTrue,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Describe returns the fields of a form in declaration order
func Describe(name Name) ([]Field, bool) {
	def, ok := Get(name)
	if !ok {
		return nil, false
	}
	return describeType(def.Model, def.Messages), true
}

// Lookup returns the constraints of a single field of a form
func Lookup(name Name, field string) (Field, bool) {
	fields, ok := Describe(name)
	if !ok {
		return Field{}, false
	}
	for _, f := range fields {
		if f.Name == field {
			return f, true
		}
	}
	return Field{}, false
}

func describeType(t reflect.Type, messages map[string]string) []Field {
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		// embedded submission metadata is not part of the record
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		f := describeField(sf)
		f.Message = messages[f.Name]
		fields = append(fields, f)
	}
	return fields
}

func describeField(sf reflect.StructField) Field {
	f := Field{Name: jsonName(sf), Kind: KindText}

	switch sf.Type.Kind() {
	case reflect.Bool:
		f.Kind = KindFlag
	case reflect.Slice:
		f.Kind = KindSet
	}

	inDive := false
	for _, rule := range strings.Split(sf.Tag.Get("validate"), ",") {
		tag, param, _ := strings.Cut(rule, "=")
		switch tag {
		case "":
		case "dive":
			inDive = true
		case "required":
			f.Required = true
		case "accepted":
			f.Required = true
			f.MustBeTrue = true
		case "min":
			n, _ := strconv.Atoi(param)
			if f.Kind == KindSet && !inDive {
				f.MinItems = n
				f.Required = n > 0
			} else {
				f.MinLength = n
			}
		case "email":
			f.Kind = KindEmail
		case "in_mobile":
			f.Kind = KindMobile
			f.Pattern = MobilePattern
		case "url":
			f.Kind = KindURL
		case "numeric":
			f.Kind = KindNumeric
		case "enum":
			if f.Kind != KindSet {
				f.Kind = KindChoice
			}
			f.Enum = param
			f.Options = enums[param]
		}
	}
	return f
}
