package tsiface

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/goliatone/go-entityforms/pkg/model"
)

var (
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentPattern  = regexp.MustCompile(`//.*`)
	interfaceBlock      = regexp.MustCompile(`interface\s+\w+\s*(?:extends\s+[\w\s,]+)?\s*\{([^}]+)\}`)
	memberSeparator     = regexp.MustCompile(`[;\n]`)
	basicMember         = regexp.MustCompile(`^(\w+)(\?)?:\s*(.+)$`)

	interfaceHeader = regexp.MustCompile(`interface\s+\w+`)
	commentPrefix   = regexp.MustCompile(`^//\s*`)
	commentedMember = regexp.MustCompile(`^(\w+)(\?)?:\s*(.+?)[;,]?\s*$`)
)

const interfaceBodyStop = "}"

// Mode selects which scanner Parse uses.
type Mode string

const (
	// ModeBasic strips comments and requires an interface block.
	ModeBasic Mode = "basic"
	// ModeComments keeps `//` comments as field descriptions.
	ModeComments Mode = "comments"
)

// ParseMode maps a mode name onto a Mode. The empty string selects ModeBasic.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeBasic:
		return ModeBasic, nil
	case ModeComments:
		return ModeComments, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithLabeler overrides FormatLabel when deriving labels from member names.
func WithLabeler(labeler func(string) string) Option {
	return func(p *Parser) {
		if labeler != nil {
			p.labeler = labeler
		}
	}
}

// WithSanitizer filters comment text before it becomes a field description.
func WithSanitizer(sanitize func(string) string) Option {
	return func(p *Parser) {
		p.sanitize = sanitize
	}
}

// WithLogger receives a debug record for every member line that is skipped.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser turns interface source text into field descriptors. It keeps no
// state between calls and is safe for concurrent use.
type Parser struct {
	labeler  func(string) string
	sanitize func(string) string
	logger   *slog.Logger
}

// New constructs a Parser. Without options it behaves like the package-level
// ParseBasic and ParseWithComments functions.
func New(options ...Option) *Parser {
	p := &Parser{
		labeler: FormatLabel,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

var defaultParser = New()

// ParseBasic parses source with a default Parser. See Parser.ParseBasic.
func ParseBasic(source string) ([]model.FieldDescriptor, error) {
	return defaultParser.ParseBasic(source)
}

// ParseWithComments parses source with a default Parser. See
// Parser.ParseWithComments.
func ParseWithComments(source string) ([]model.FieldDescriptor, error) {
	return defaultParser.ParseWithComments(source)
}

// Parse dispatches to the scanner selected by mode.
func (p *Parser) Parse(mode Mode, source string) ([]model.FieldDescriptor, error) {
	switch mode {
	case ModeBasic, "":
		return p.ParseBasic(source)
	case ModeComments:
		return p.ParseWithComments(source)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Generate is Parse plus the checks the form builder applies before using
// the result: blank input fails with ErrEmptySource and a parse without
// members fails with ErrNoFields.
func (p *Parser) Generate(mode Mode, source string) ([]model.FieldDescriptor, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}
	fields, err := p.Parse(mode, source)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	return fields, nil
}

// ParseBasic removes all comments, extracts the body of the first interface
// block and emits one descriptor per `name[?]: type` member, in source order.
// It returns ErrInvalidFormat when no interface block exists. A block without
// recognisable members yields an empty result and a nil error.
func (p *Parser) ParseBasic(source string) ([]model.FieldDescriptor, error) {
	clean := blockCommentPattern.ReplaceAllString(source, "")
	clean = lineCommentPattern.ReplaceAllString(clean, "")

	match := interfaceBlock.FindStringSubmatch(clean)
	if match == nil {
		return nil, ErrInvalidFormat
	}

	var fields []model.FieldDescriptor
	for _, fragment := range memberSeparator.Split(match[1], -1) {
		line := strings.TrimSpace(fragment)
		if line == "" || !strings.Contains(line, ":") {
			continue
		}
		member := basicMember.FindStringSubmatch(line)
		if member == nil {
			p.logger.Debug("tsiface: skipping member line", "line", line)
			continue
		}
		fields = append(fields, p.buildField(member, len(fields), ""))
	}
	return fields, nil
}

// ParseWithComments scans source line by line. Scanning starts after the
// first line naming an interface and stops at a line holding only `}`. A `//`
// line stores its text as the pending description, which is consumed by the
// next member line. The error is always nil; it is kept so both scanners
// share a signature.
func (p *Parser) ParseWithComments(source string) ([]model.FieldDescriptor, error) {
	var (
		fields  []model.FieldDescriptor
		pending string
		inside  bool
	)

	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)

		if interfaceHeader.MatchString(line) {
			inside = true
			continue
		}
		if !inside {
			continue
		}
		if line == interfaceBodyStop {
			break
		}
		if strings.HasPrefix(line, "//") {
			pending = p.describe(commentPrefix.ReplaceAllString(line, ""))
			continue
		}
		if !strings.Contains(line, ":") {
			continue
		}

		member := commentedMember.FindStringSubmatch(line)
		if member == nil {
			p.logger.Debug("tsiface: skipping member line", "line", line)
			continue
		}
		fields = append(fields, p.buildField(member, len(fields), pending))
		pending = ""
	}
	return fields, nil
}

// buildField assembles a descriptor from a member submatch
// (full, name, optional marker, type expression).
func (p *Parser) buildField(member []string, order int, description string) model.FieldDescriptor {
	name, optional, typeExpr := member[1], member[2], member[3]
	resolved := ResolveType(typeExpr)
	fieldType := resolved.FieldType()

	field := model.FieldDescriptor{
		Name:        name,
		Label:       p.labeler(name),
		Type:        fieldType,
		Description: description,
		ShowInList:  true,
		ShowInForm:  true,
		Sortable:    fieldType.Sortable(),
		Searchable:  fieldType.Searchable(),
		Order:       order,
		Validation: model.FieldValidation{
			Required: optional == "",
		},
	}

	if resolved.Array && field.Description == "" {
		field.Description = "Array of " + string(resolved.Element)
	}
	return field
}

func (p *Parser) describe(comment string) string {
	if p.sanitize == nil {
		return comment
	}
	return p.sanitize(comment)
}
