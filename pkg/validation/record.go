// Package validation checks data records against an entity's field
// descriptors before they are sent to the data API.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// RecordIssue represents a validation error for one field.
type RecordIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// RecordValidationResult captures validation outcomes for a record.
type RecordValidationResult struct {
	Valid   bool          `json:"valid"`
	Summary string        `json:"summary,omitempty"`
	Issues  []RecordIssue `json:"issues,omitempty"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var dateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// ValidateRecord checks record against entity. Required fields are checked
// first and summarised as "Required fields missing: A, B"; present values are
// then checked against their field kind and validation rules. System fields
// and keys without a descriptor are ignored.
func ValidateRecord(entity model.Entity, record map[string]any) RecordValidationResult {
	result := RecordValidationResult{Valid: true}

	missing := model.MissingRequired(entity.Fields, record)
	if len(missing) > 0 {
		labels := make([]string, 0, len(missing))
		for _, field := range missing {
			labels = append(labels, field.DisplayLabel())
			result.Issues = append(result.Issues, RecordIssue{
				Field:   field.Name,
				Message: field.DisplayLabel() + " is required",
			})
		}
		result.Summary = "Required fields missing: " + strings.Join(labels, ", ")
	}

	for _, field := range entity.Fields {
		if model.IsSystemField(field.Name) {
			continue
		}
		value, ok := record[field.Name]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		for _, msg := range checkValue(field, value) {
			result.Issues = append(result.Issues, RecordIssue{Field: field.Name, Message: msg})
		}
	}

	result.Valid = len(result.Issues) == 0
	return result
}

func checkValue(field model.FieldDescriptor, value any) []string {
	label := field.DisplayLabel()

	switch field.Type {
	case model.FieldTypeNumber:
		n, ok := toFloat(value)
		if !ok {
			return []string{label + " must be a number"}
		}
		return checkRange(field, n)
	case model.FieldTypeBoolean, model.FieldTypeCheckbox:
		if _, ok := value.(bool); !ok {
			return []string{label + " must be true or false"}
		}
		return nil
	case model.FieldTypeArray:
		items, ok := value.([]any)
		if !ok {
			return []string{label + " must be a list"}
		}
		var msgs []string
		for _, item := range items {
			if msg := checkChoice(field, fmt.Sprint(item)); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return msgs
	case model.FieldTypeJSON:
		switch value.(type) {
		case map[string]any, []any:
			return nil
		}
		return []string{label + " must be a JSON object or array"}
	case model.FieldTypeReference:
		if field.ReferenceConfig != nil && field.ReferenceConfig.Multiple {
			if _, ok := value.([]any); !ok {
				return []string{label + " must be a list of ids"}
			}
			return nil
		}
		if _, ok := value.(string); !ok {
			return []string{label + " must be an id"}
		}
		return nil
	}

	text, ok := value.(string)
	if !ok {
		return []string{label + " must be text"}
	}

	var msgs []string
	switch field.Type {
	case model.FieldTypeEmail:
		if !emailPattern.MatchString(text) {
			msgs = append(msgs, label+" must be a valid email address")
		}
	case model.FieldTypeDate:
		if _, err := time.Parse(time.DateOnly, text); err != nil {
			if _, err := time.Parse(time.RFC3339, text); err != nil {
				msgs = append(msgs, label+" must be a date (YYYY-MM-DD)")
			}
		}
	case model.FieldTypeDatetime:
		if !parsesAsDateTime(text) {
			msgs = append(msgs, label+" must be a date and time")
		}
	case model.FieldTypeSelect, model.FieldTypeRadio:
		if msg := checkChoice(field, text); msg != "" {
			msgs = append(msgs, msg)
		}
	}

	msgs = append(msgs, checkText(field, text)...)
	return msgs
}

func checkRange(field model.FieldDescriptor, n float64) []string {
	var msgs []string
	if lower := field.Validation.Min; lower != nil && n < *lower {
		msgs = append(msgs, fmt.Sprintf("%s must be at least %v", field.DisplayLabel(), *lower))
	}
	if upper := field.Validation.Max; upper != nil && n > *upper {
		msgs = append(msgs, fmt.Sprintf("%s must be at most %v", field.DisplayLabel(), *upper))
	}
	return msgs
}

func checkText(field model.FieldDescriptor, text string) []string {
	var msgs []string
	length := utf8.RuneCountInString(text)
	if minLength := field.Validation.MinLength; minLength != nil && length < *minLength {
		msgs = append(msgs, fmt.Sprintf("%s must be at least %d characters", field.DisplayLabel(), *minLength))
	}
	if maxLength := field.Validation.MaxLength; maxLength != nil && length > *maxLength {
		msgs = append(msgs, fmt.Sprintf("%s must be at most %d characters", field.DisplayLabel(), *maxLength))
	}
	if pattern := field.Validation.Pattern; pattern != "" {
		re, err := regexp.Compile(pattern)
		switch {
		case err != nil:
			msgs = append(msgs, fmt.Sprintf("%s has an invalid pattern %q", field.DisplayLabel(), pattern))
		case !re.MatchString(text):
			msgs = append(msgs, field.DisplayLabel()+" does not match the required format")
		}
	}
	return msgs
}

// checkChoice enforces validation.enum, or the option values of select,
// radio and array fields.
func checkChoice(field model.FieldDescriptor, value string) string {
	allowed := field.Validation.Enum
	if len(allowed) == 0 {
		for _, option := range field.Options {
			allowed = append(allowed, option.Value)
		}
	}
	if len(allowed) == 0 {
		return ""
	}
	for _, candidate := range allowed {
		if candidate == value {
			return ""
		}
	}
	return fmt.Sprintf("%s must be one of: %s", field.DisplayLabel(), strings.Join(allowed, ", "))
}

func parsesAsDateTime(text string) bool {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, text); err == nil {
			return true
		}
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	default:
		return 0, false
	}
}
