package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// ErrorMapping splits validation issues into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapIssues attributes `fields.<index>.*` issues to the field at that index
// and keeps everything else at form level. Messages are de-duplicated while
// preserving order.
func MapIssues(entity model.Entity, issues []model.Issue) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}

	for _, issue := range issues {
		message := strings.TrimSpace(issue.Message)
		if message == "" {
			continue
		}
		if name, ok := issueField(entity, issue.Path); ok {
			mapping.Fields[name] = appendUnique(mapping.Fields[name], message)
			continue
		}
		mapping.Form = appendUnique(mapping.Form, message)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	return mapping
}

func issueField(entity model.Entity, path string) (string, bool) {
	parts := strings.Split(path, ".")
	if len(parts) < 2 || parts[0] != "fields" {
		return "", false
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 || index >= len(entity.Fields) {
		return "", false
	}
	name := entity.Fields[index].Name
	if name == "" {
		return "", false
	}
	return name, true
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
