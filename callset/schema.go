//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package callset

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"
)

// ArgSchema holds validation rules for a single argument.
// Rules not set are not enforced.
type ArgSchema struct {
	// Type is the expected JSON type: "string", "number", "integer", "boolean", "array", "object" or "null".
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Required marks the argument as mandatory. Defaults to true.
	Required *bool `json:"required,omitempty" yaml:"required,omitempty"`
	// Minimum is the inclusive lower bound for numeric values.
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	// Maximum is the inclusive upper bound for numeric values.
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	// MinLength is the minimum length for string values.
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	// MaxLength is the maximum length for string values.
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	// Pattern is a regular expression string values must match.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// Enum lists allowed values.
	Enum []Value `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// schemaKinds maps schema type names to value kinds.
var schemaKinds = map[string]Kind{
	"null":    KindNull,
	"boolean": KindBool,
	"number":  KindNumber,
	"integer": KindNumber,
	"string":  KindString,
	"array":   KindArray,
	"object":  KindObject,
}

// IsRequired reports whether the argument is mandatory. Unset means required.
func (s *ArgSchema) IsRequired() bool {
	return s.Required == nil || *s.Required
}

// Check verifies that the rules themselves are well formed.
func (s *ArgSchema) Check() error {
	if s == nil {
		return errors.New("schema is nil")
	}
	if s.Type != "" {
		if _, ok := schemaKinds[s.Type]; !ok {
			return fmt.Errorf("unknown type %q", s.Type)
		}
	}
	if s.Minimum != nil && s.Maximum != nil && *s.Minimum > *s.Maximum {
		return fmt.Errorf("minimum %v greater than maximum %v", *s.Minimum, *s.Maximum)
	}
	if s.MinLength != nil && *s.MinLength < 0 {
		return fmt.Errorf("negative minLength %d", *s.MinLength)
	}
	if s.MaxLength != nil && s.MinLength != nil && *s.MinLength > *s.MaxLength {
		return fmt.Errorf("minLength %d greater than maxLength %d", *s.MinLength, *s.MaxLength)
	}
	if s.Pattern != "" {
		if _, err := regexp.Compile(s.Pattern); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", s.Pattern, err)
		}
	}
	return nil
}

// Validate validates a value against the rules. The returned error aggregates
// every violated rule for the argument.
func (s *ArgSchema) Validate(name string, value Value) error {
	var result error
	if s.Type != "" {
		expected := schemaKinds[s.Type]
		if value.Kind() != expected {
			// Other rules presume the declared type.
			return fmt.Errorf("argument %s has wrong type: expected %s, got %s", name, s.Type, value.Kind())
		}
		if s.Type == "integer" && value.NumberVal() != float64(int64(value.NumberVal())) {
			result = multierror.Append(result,
				fmt.Errorf("argument %s is not an integer: %v", name, value.NumberVal()))
		}
	}
	if len(s.Enum) > 0 {
		found := false
		for _, allowed := range s.Enum {
			if value.Equal(allowed) {
				found = true
				break
			}
		}
		if !found {
			result = multierror.Append(result,
				fmt.Errorf("argument %s has value %s not in enum", name, value))
		}
	}
	if value.Kind() == KindNumber {
		if s.Minimum != nil && value.NumberVal() < *s.Minimum {
			result = multierror.Append(result,
				fmt.Errorf("argument %s is below minimum: %v < %v", name, value.NumberVal(), *s.Minimum))
		}
		if s.Maximum != nil && value.NumberVal() > *s.Maximum {
			result = multierror.Append(result,
				fmt.Errorf("argument %s exceeds maximum: %v > %v", name, value.NumberVal(), *s.Maximum))
		}
	}
	if value.Kind() == KindString {
		if s.MinLength != nil && value.Len() < *s.MinLength {
			result = multierror.Append(result,
				fmt.Errorf("argument %s is too short: %d < %d", name, value.Len(), *s.MinLength))
		}
		if s.MaxLength != nil && value.Len() > *s.MaxLength {
			result = multierror.Append(result,
				fmt.Errorf("argument %s is too long: %d > %d", name, value.Len(), *s.MaxLength))
		}
		if s.Pattern != "" {
			re, err := regexp.Compile(s.Pattern)
			if err != nil {
				return fmt.Errorf("invalid pattern %q: %w", s.Pattern, err)
			}
			if !re.MatchString(value.StringVal()) {
				result = multierror.Append(result,
					fmt.Errorf("argument %s does not match pattern %s", name, s.Pattern))
			}
		}
	}
	return result
}
