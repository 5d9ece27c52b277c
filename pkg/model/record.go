package model

// SystemFields are record keys owned by the backend. They are never edited
// through forms and are dropped before records are submitted or exported.
var SystemFields = []string{
	"_id",
	"id",
	"userId",
	"databaseId",
	"_collection",
	"deletedAt",
	"createdBy",
	"updatedBy",
	"createdAt",
	"updatedAt",
	"__v",
}

// IsSystemField reports whether name is backend-owned.
func IsSystemField(name string) bool {
	for _, system := range SystemFields {
		if name == system {
			return true
		}
	}
	return false
}

// StripSystemFields returns a shallow copy of record without backend-owned keys.
func StripSystemFields(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for key, value := range record {
		if IsSystemField(key) {
			continue
		}
		out[key] = value
	}
	return out
}

// DefaultValue returns the initial value a blank record form uses for field.
func DefaultValue(field FieldDescriptor) any {
	if field.DefaultValue != nil {
		return field.DefaultValue
	}
	switch field.Type {
	case FieldTypeBoolean, FieldTypeCheckbox:
		return false
	case FieldTypeNumber:
		return 0
	case FieldTypeArray:
		return []any{}
	case FieldTypeJSON:
		return map[string]any{}
	default:
		return ""
	}
}

// DefaultRecord builds a blank record for fields using DefaultValue.
func DefaultRecord(fields []FieldDescriptor) map[string]any {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		out[field.Name] = DefaultValue(field)
	}
	return out
}

// MissingRequired lists the required, non-system fields whose value in record
// is absent, nil or the empty string.
func MissingRequired(fields []FieldDescriptor, record map[string]any) []FieldDescriptor {
	var missing []FieldDescriptor
	for _, field := range fields {
		if !field.Validation.Required || IsSystemField(field.Name) {
			continue
		}
		value, ok := record[field.Name]
		if !ok || value == nil {
			missing = append(missing, field)
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// DisplayLabel prefers the label and falls back to the name.
func (f FieldDescriptor) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
