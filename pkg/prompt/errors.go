package prompt

import (
	"errors"

	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrEmptyInterface is returned when no interface text was entered.
	ErrEmptyInterface = tsiface.ErrEmptySource
	// ErrNoFields is returned when the interface yields no fields.
	ErrNoFields = tsiface.ErrNoFields
)
