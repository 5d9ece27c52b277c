package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string
	info      []string

	inputPos   int
	selectPos  int
	confirmPos int
	textPos    int

	validators []func(string) error
	defaults   []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.validators = append(s.validators, cfg.Validator)
	s.defaults = append(s.defaults, cfg.Default)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return cfg.Default, nil
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

const productInterface = `interface Product {
  // Unique code
  sku: string;
  price: number;
  tags?: string[];
}`

func TestSessionBuildsEntity(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"products", ""},
		selectIdx: []int{1},
		confirm:   []bool{true, true},
		textAreas: []string{productInterface},
	}

	entity, err := NewSession(driver).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if entity.Name != "products" || entity.DisplayName != "Products" {
		t.Fatalf("unexpected identity: %q %q", entity.Name, entity.DisplayName)
	}
	if !entity.SoftDelete || !entity.Timestamps {
		t.Fatalf("settings not applied: %+v", entity)
	}
	if len(entity.Fields) != 3 || entity.Fields[0].Description != "Unique code" {
		t.Fatalf("unexpected fields: %+v", entity.Fields)
	}
	if diff := cmp.Diff([]string{"Generated 3 field(s) successfully"}, driver.info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if driver.defaults[1] != "Products" {
		t.Fatalf("display name default should derive from the name, got %q", driver.defaults[1])
	}
	if driver.validators[0] == nil || driver.validators[0]("Bad Name") == nil {
		t.Fatalf("name prompt should validate input")
	}
}

func TestSessionBasicModeIgnoresComments(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"products", "Catalog"},
		selectIdx: []int{0},
		textAreas: []string{productInterface},
	}
	entity, err := NewSession(driver).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if entity.DisplayName != "Catalog" {
		t.Fatalf("display name %q", entity.DisplayName)
	}
	if entity.Fields[0].Description != "" {
		t.Fatalf("basic mode should not keep comments: %q", entity.Fields[0].Description)
	}
	if entity.SoftDelete || !entity.Timestamps {
		t.Fatalf("defaults not kept: %+v", entity)
	}
}

func TestSessionErrors(t *testing.T) {
	tests := []struct {
		name   string
		driver *stubDriver
		want   error
	}{
		{
			name:   "empty interface",
			driver: &stubDriver{inputs: []string{"products", ""}, selectIdx: []int{0}, textAreas: []string{"   "}},
			want:   ErrEmptyInterface,
		},
		{
			name:   "invalid interface",
			driver: &stubDriver{inputs: []string{"products", ""}, selectIdx: []int{0}, textAreas: []string{"type X = {}"}},
			want:   tsiface.ErrInvalidFormat,
		},
		{
			name:   "no fields",
			driver: &stubDriver{inputs: []string{"products", ""}, selectIdx: []int{1}, textAreas: []string{"type X = {}"}},
			want:   ErrNoFields,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.driver).Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}

	if ErrNoFields.Error() != "No fields found in interface" {
		t.Fatalf("unexpected message %q", ErrNoFields.Error())
	}
}

func TestSessionRejectsBadName(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Products"}}
	if _, err := NewSession(driver).Run(context.Background()); err == nil {
		t.Fatalf("expected name validation error")
	}
}

func TestSessionMergesIntoExisting(t *testing.T) {
	existing := model.NewEntity("products", "Products")
	existing.Fields = []model.FieldDescriptor{
		{Name: "sku", Label: "Code", Type: model.FieldTypeText},
	}
	driver := &stubDriver{selectIdx: []int{0}, textAreas: []string{productInterface}}

	entity, err := NewSession(driver, WithExisting(existing)).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.inputPos != 0 {
		t.Fatalf("existing entity should skip naming prompts")
	}
	var names []string
	for i, field := range entity.Fields {
		names = append(names, field.Name)
		if field.Order != i {
			t.Fatalf("field %s has order %d", field.Name, field.Order)
		}
	}
	if diff := cmp.Diff([]string{"sku", "price", "tags"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if entity.Fields[0].Label != "Code" {
		t.Fatalf("existing field overwritten: %+v", entity.Fields[0])
	}
}

func TestSessionReportsDuplicateMembers(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"dups", ""},
		selectIdx: []int{0},
		textAreas: []string{"interface D { a: string; a: number }"},
	}
	entity, err := NewSession(driver).Run(context.Background())
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(entity.Fields) != 2 {
		t.Fatalf("entity should still be returned, got %+v", entity)
	}
}
