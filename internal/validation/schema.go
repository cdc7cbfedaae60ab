package validation

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldType is the JSON type a property must have.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// Format names a well-known string format. Formats are checked with the
// go-playground validator tag of the same name.
type Format string

const (
	FormatNone  Format = ""
	FormatEmail Format = "email"
)

// Rule identifies which constraint a value violated.
type Rule string

const (
	RuleRequired      Rule = "required"
	RuleMaxProperties Rule = "max_properties"
	RuleUnknown       Rule = "unknown"
	RuleType          Rule = "type"
	RulePattern       Rule = "pattern"
	RuleEnum          Rule = "enum"
	RuleFormat        Rule = "format"
	RuleMinLength     Rule = "min_length"
	RuleMaxLength     Rule = "max_length"
)

// Field declares the constraints on one property.
//
// Lengths are measured in bytes. Zero values disable a constraint.
type Field struct {
	Name      string
	Type      FieldType
	Pattern   *regexp.Regexp
	Enum      []string
	Format    Format
	MinLength int
	MaxLength int
}

// Schema is a declarative constraint set for one request shape.
type Schema struct {
	// Required lists properties that must be present and non-null.
	Required []string

	// MaxProperties bounds the number of properties; zero means unbounded.
	MaxProperties int

	// Fields declares every allowed property. Properties not listed are rejected.
	Fields []Field
}

var formatValidator = validator.New()

// Field returns the declaration for name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks input against the schema. It returns nil or a
// CustomValidationErrors listing every violation; each field reports at
// most its first failing constraint.
func (s Schema) Validate(input map[string]any) error {
	var violations CustomValidationErrors

	if s.MaxProperties > 0 && len(input) > s.MaxProperties {
		violations = append(violations, CustomValidationError{
			Rule:    RuleMaxProperties,
			Message: fmt.Sprintf("must have at most %d properties", s.MaxProperties),
		})
	}

	for _, name := range s.Required {
		if v, ok := input[name]; !ok || v == nil {
			violations = append(violations, CustomValidationError{
				Field:   name,
				Rule:    RuleRequired,
				Message: "is required",
			})
		}
	}

	// Sorted so the error order is stable across map iterations.
	names := make([]string, 0, len(input))
	for name := range input {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := input[name]
		field, known := s.Field(name)
		if !known {
			violations = append(violations, CustomValidationError{
				Field:   name,
				Rule:    RuleUnknown,
				Message: "is not allowed",
			})
			continue
		}
		if value == nil {
			continue
		}
		if v := field.check(value); v != nil {
			violations = append(violations, *v)
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return violations
}

func (f Field) check(value any) *CustomValidationError {
	fail := func(rule Rule, msg string) *CustomValidationError {
		return &CustomValidationError{Field: f.Name, Rule: rule, Message: msg}
	}

	switch f.Type {
	case TypeNumber:
		if _, ok := value.(float64); !ok {
			return fail(RuleType, "must be a number")
		}
		return nil
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fail(RuleType, "must be a boolean")
		}
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return fail(RuleType, "must be a string")
	}

	if f.MinLength > 0 && len(s) < f.MinLength {
		return fail(RuleMinLength, fmt.Sprintf("must be at least %d characters", f.MinLength))
	}
	if f.MaxLength > 0 && len(s) > f.MaxLength {
		return fail(RuleMaxLength, fmt.Sprintf("must not exceed %d characters", f.MaxLength))
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return fail(RulePattern, fmt.Sprintf("must match %s", f.Pattern.String()))
	}
	if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
		return fail(RuleEnum, fmt.Sprintf("must be one of: %s", strings.Join(f.Enum, " ")))
	}
	if f.Format != FormatNone {
		if err := formatValidator.Var(s, string(f.Format)); err != nil {
			return fail(RuleFormat, fmt.Sprintf("must be a valid %s", formatDescription(f.Format)))
		}
	}

	return nil
}

func formatDescription(f Format) string {
	switch f {
	case FormatEmail:
		return "email address"
	default:
		return string(f)
	}
}
