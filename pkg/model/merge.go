package model

// MergeFields appends the generated fields whose names are not already taken
// by existing ones. Existing fields keep their position and content; a name
// repeated inside generated is only added once. The result is a new slice.
func MergeFields(existing, generated []FieldDescriptor) []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(existing)+len(generated))
	out = append(out, existing...)

	taken := make(map[string]struct{}, len(existing)+len(generated))
	for _, field := range existing {
		taken[field.Name] = struct{}{}
	}
	for _, field := range generated {
		if _, ok := taken[field.Name]; ok {
			continue
		}
		taken[field.Name] = struct{}{}
		out = append(out, field)
	}
	return out
}

// Renumber returns a copy of fields whose Order matches their index.
func Renumber(fields []FieldDescriptor) []FieldDescriptor {
	if fields == nil {
		return nil
	}
	out := make([]FieldDescriptor, len(fields))
	for i, field := range fields {
		field.Order = i
		out[i] = field
	}
	return out
}
