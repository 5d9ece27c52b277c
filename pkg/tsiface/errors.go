package tsiface

import "errors"

// ErrInvalidFormat is returned by ParseBasic when the input holds no
// interface block. The message is shown to end users verbatim.
var ErrInvalidFormat = errors.New("Invalid interface format. Please provide a valid TypeScript interface.")

// ErrUnknownMode is returned when a parse mode name is not recognised.
var ErrUnknownMode = errors.New("tsiface: unknown parse mode")

// ErrEmptySource is returned by Parser.Generate when the source is blank.
var ErrEmptySource = errors.New("Please enter an interface")

// ErrNoFields is returned by Parser.Generate when no member was recognised.
var ErrNoFields = errors.New("No fields found in interface")
