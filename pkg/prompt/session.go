package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

var modeOptions = []string{"Basic", "With comments"}

// Session walks the user through naming an entity and pasting an interface,
// then builds the entity from the parsed fields.
type Session struct {
	driver   Driver
	parser   *tsiface.Parser
	existing *model.Entity
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithParser replaces the default tsiface parser.
func WithParser(parser *tsiface.Parser) SessionOption {
	return func(s *Session) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithExisting skips the naming questions and merges generated fields into
// entity. Fields whose names already exist are kept as they are.
func WithExisting(entity model.Entity) SessionOption {
	return func(s *Session) {
		s.existing = &entity
	}
}

// NewSession constructs a Session on top of driver.
func NewSession(driver Driver, options ...SessionOption) *Session {
	s := &Session{driver: driver, parser: tsiface.New()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run asks the questions and returns the resulting entity. A
// *model.ValidationError is returned alongside the entity when the parsed
// fields cannot be saved as they are (for example duplicate member names).
func (s *Session) Run(ctx context.Context) (model.Entity, error) {
	if s.driver == nil {
		return model.Entity{}, errors.New("prompt: driver is required")
	}

	entity, err := s.identify(ctx)
	if err != nil {
		return model.Entity{}, err
	}

	modeIndex, err := s.driver.Select(ctx, SelectConfig{
		Message: "Parser mode",
		Options: modeOptions,
		Help:    "With comments turns // comments above a member into its description",
	})
	if err != nil {
		return model.Entity{}, err
	}
	mode := tsiface.ModeBasic
	if modeIndex == 1 {
		mode = tsiface.ModeComments
	}

	source, err := s.driver.TextArea(ctx, TextAreaConfig{
		Message: "Paste TypeScript interface",
		Help:    "interface Product { name: string; price: number; }",
	})
	if err != nil {
		return model.Entity{}, err
	}

	fields, err := s.parser.Generate(mode, source)
	if err != nil {
		return model.Entity{}, err
	}
	if err := s.driver.Info(ctx, fmt.Sprintf("Generated %d field(s) successfully", len(fields))); err != nil {
		return model.Entity{}, err
	}

	if s.existing != nil {
		entity.Fields = model.Renumber(model.MergeFields(entity.Fields, fields))
	} else {
		entity.Fields = fields
		if err := s.askSettings(ctx, &entity); err != nil {
			return model.Entity{}, err
		}
	}

	if err := entity.Validate(); err != nil {
		return entity, err
	}
	return entity, nil
}

func (s *Session) identify(ctx context.Context) (model.Entity, error) {
	if s.existing != nil {
		return *s.existing, nil
	}

	name, err := s.driver.Input(ctx, InputConfig{
		Message:   "Entity name",
		Help:      "Lowercase letters, digits and underscores, e.g. blog_posts",
		Validator: model.ValidateName,
	})
	if err != nil {
		return model.Entity{}, err
	}
	name = strings.TrimSpace(name)
	if err := model.ValidateName(name); err != nil {
		return model.Entity{}, err
	}

	displayName, err := s.driver.Input(ctx, InputConfig{
		Message: "Display name",
		Default: tsiface.FormatLabel(name),
	})
	if err != nil {
		return model.Entity{}, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = tsiface.FormatLabel(name)
	}
	return model.NewEntity(name, displayName), nil
}

func (s *Session) askSettings(ctx context.Context, entity *model.Entity) error {
	timestamps, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: "Add createdAt/updatedAt timestamps?",
		Default: entity.Timestamps,
	})
	if err != nil {
		return err
	}
	softDelete, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: "Enable soft delete?",
		Default: entity.SoftDelete,
	})
	if err != nil {
		return err
	}
	entity.Timestamps = timestamps
	entity.SoftDelete = softDelete
	return nil
}
