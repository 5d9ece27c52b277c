package model

import (
	"fmt"
	"strings"
)

// FieldType is the closed set of widget-oriented field kinds a form builder
// understands.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeTextarea  FieldType = "textarea"
	FieldTypeString    FieldType = "string"
	FieldTypeNumber    FieldType = "number"
	FieldTypeEmail     FieldType = "email"
	FieldTypePassword  FieldType = "password"
	FieldTypeDate      FieldType = "date"
	FieldTypeDatetime  FieldType = "datetime"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeSelect    FieldType = "select"
	FieldTypeRadio     FieldType = "radio"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeFile      FieldType = "file"
	FieldTypeImage     FieldType = "image"
	FieldTypeReference FieldType = "reference"
	FieldTypeArray     FieldType = "array"
	FieldTypeJSON      FieldType = "json"
)

var fieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeString,
	FieldTypeNumber,
	FieldTypeEmail,
	FieldTypePassword,
	FieldTypeDate,
	FieldTypeDatetime,
	FieldTypeBoolean,
	FieldTypeSelect,
	FieldTypeRadio,
	FieldTypeCheckbox,
	FieldTypeFile,
	FieldTypeImage,
	FieldTypeReference,
	FieldTypeArray,
	FieldTypeJSON,
}

// FieldTypes returns every known field kind in declaration order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), fieldTypes...)
}

// Valid reports whether t is part of the closed set.
func (t FieldType) Valid() bool {
	for _, known := range fieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Sortable reports whether list views can order records by a field of this
// kind. Structured values (json, array) cannot.
func (t FieldType) Sortable() bool {
	return t != FieldTypeJSON && t != FieldTypeArray
}

// Searchable reports whether free-text search applies to this kind.
func (t FieldType) Searchable() bool {
	return t == FieldTypeText || t == FieldTypeString
}

// ParseFieldType maps a raw string onto a FieldType, rejecting unknown kinds.
func ParseFieldType(raw string) (FieldType, error) {
	candidate := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	if !candidate.Valid() {
		return "", fmt.Errorf("model: unknown field type %q", raw)
	}
	return candidate, nil
}

// FieldValidation carries the per-field constraints. Numeric limits are
// pointers so an explicit zero survives serialisation.
type FieldValidation struct {
	Required  bool     `json:"required" yaml:"required"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// Option is a selectable value for select/radio fields.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ReferenceConfig points a reference field at another collection.
type ReferenceConfig struct {
	Collection   string `json:"collection" yaml:"collection"`
	DisplayField string `json:"displayField" yaml:"displayField"`
	Multiple     bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`
}

// FieldDescriptor describes one field of a dynamic collection. The JSON keys
// match the payloads the CMS backend stores.
type FieldDescriptor struct {
	Name            string           `json:"name" yaml:"name"`
	Label           string           `json:"label,omitempty" yaml:"label,omitempty"`
	Type            FieldType        `json:"type" yaml:"type"`
	Description     string           `json:"description" yaml:"description"`
	DefaultValue    any              `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Validation      FieldValidation  `json:"validation" yaml:"validation"`
	Options         []Option         `json:"options,omitempty" yaml:"options,omitempty"`
	ReferenceConfig *ReferenceConfig `json:"referenceConfig,omitempty" yaml:"referenceConfig,omitempty"`
	Placeholder     string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText        string           `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	ShowInList      bool             `json:"showInList" yaml:"showInList"`
	ShowInForm      bool             `json:"showInForm" yaml:"showInForm"`
	Sortable        bool             `json:"sortable" yaml:"sortable"`
	Searchable      bool             `json:"searchable" yaml:"searchable"`
	Order           int              `json:"order" yaml:"order"`
}

// Permissions lists the roles allowed to perform each record operation.
type Permissions struct {
	Create []string `json:"create,omitempty" yaml:"create,omitempty"`
	Read   []string `json:"read,omitempty" yaml:"read,omitempty"`
	Update []string `json:"update,omitempty" yaml:"update,omitempty"`
	Delete []string `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// DefaultPermissions returns the role set new entities start with.
func DefaultPermissions() Permissions {
	return Permissions{
		Create: []string{"admin"},
		Read:   []string{"admin", "user"},
		Update: []string{"admin"},
		Delete: []string{"admin"},
	}
}

// Entity is a collection schema: its identity, API settings and ordered
// field list.
type Entity struct {
	Name        string            `json:"name" yaml:"name"`
	DisplayName string            `json:"displayName" yaml:"displayName"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Fields      []FieldDescriptor `json:"fields" yaml:"fields"`
	Timestamps  bool              `json:"timestamps" yaml:"timestamps"`
	SoftDelete  bool              `json:"softDelete" yaml:"softDelete"`
	EnableAPI   bool              `json:"enableApi" yaml:"enableApi"`
	APIPath     string            `json:"apiPath,omitempty" yaml:"apiPath,omitempty"`
	Permissions *Permissions      `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// NewEntity returns an entity carrying the defaults the admin console uses
// for new collections.
func NewEntity(name, displayName string) Entity {
	perms := DefaultPermissions()
	return Entity{
		Name:        name,
		DisplayName: displayName,
		Timestamps:  true,
		SoftDelete:  false,
		EnableAPI:   true,
		Permissions: &perms,
	}
}

// CollectionPath returns the collection path segment used by the data API.
func (e Entity) CollectionPath() string {
	if path := strings.Trim(strings.TrimSpace(e.APIPath), "/"); path != "" {
		return path
	}
	return e.Name
}

// Field looks up a field by name.
func (e Entity) Field(name string) (FieldDescriptor, bool) {
	for _, field := range e.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}
