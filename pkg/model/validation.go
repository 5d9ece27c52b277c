package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var entityNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var (
	errEntityNameMissing        = errors.New("Name is required")
	errEntityNameFormat         = errors.New("Must be lowercase with underscores only")
	errEntityDisplayNameMissing = errors.New("Display name is required")
	errEntityFieldsMissing      = errors.New("At least one field is required")
	errFieldNameOrLabelMissing  = errors.New("All fields must have name and label")
)

// Issue is a single validation failure. Path uses dotted notation
// ("fields.2.type") so callers can map it onto a form control.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// ValidationError aggregates every issue found while validating an entity.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "model: invalid entity"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "model: invalid entity: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(path string, err error) {
	e.Issues = append(e.Issues, Issue{Path: path, Message: err.Error()})
}

// ValidateName checks an entity name against the collection naming rule.
func ValidateName(name string) error {
	if name == "" {
		return errEntityNameMissing
	}
	if !entityNamePattern.MatchString(name) {
		return errEntityNameFormat
	}
	return nil
}

// Validate reports every rule the entity breaks as a *ValidationError, or nil
// when the entity can be saved.
func (e Entity) Validate() error {
	verr := &ValidationError{}

	if err := ValidateName(e.Name); err != nil {
		verr.add("name", err)
	}
	if strings.TrimSpace(e.DisplayName) == "" {
		verr.add("displayName", errEntityDisplayNameMissing)
	}
	if len(e.Fields) == 0 {
		verr.add("fields", errEntityFieldsMissing)
	}

	incomplete := false
	for i, field := range e.Fields {
		if field.Name == "" || field.Label == "" {
			incomplete = true
		}
		if !field.Type.Valid() {
			verr.add(fmt.Sprintf("fields.%d.type", i), fmt.Errorf("unknown field type %q", field.Type))
		}
		if field.Type == FieldTypeReference && (field.ReferenceConfig == nil || strings.TrimSpace(field.ReferenceConfig.Collection) == "") {
			verr.add(fmt.Sprintf("fields.%d.referenceConfig", i), errors.New("reference fields require a collection"))
		}
	}
	if incomplete {
		verr.add("fields", errFieldNameOrLabelMissing)
	}
	if dups := DuplicateNames(e.Fields); len(dups) > 0 {
		verr.add("fields", fmt.Errorf("Duplicate field names: %s", strings.Join(dups, ", ")))
	}

	if len(verr.Issues) == 0 {
		return nil
	}
	return verr
}

// DuplicateNames lists names that appear more than once, each reported once
// in the order its second occurrence is found.
func DuplicateNames(fields []FieldDescriptor) []string {
	seen := make(map[string]int, len(fields))
	var dups []string
	for _, field := range fields {
		seen[field.Name]++
		if seen[field.Name] == 2 {
			dups = append(dups, field.Name)
		}
	}
	return dups
}
