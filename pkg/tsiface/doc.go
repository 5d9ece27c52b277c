// Package tsiface derives CMS field descriptors from pasted TypeScript
// interface declarations.
//
// Two scanners are provided and they intentionally disagree on a few points:
//
//   - ParseBasic strips every comment, locates the first
//     `interface Name [extends ...] { ... }` block and splits its body on
//     semicolons and newlines. A missing block is reported as ErrInvalidFormat.
//   - ParseWithComments walks the raw text line by line, attaching a `//`
//     comment to the member that follows it as the field description. It
//     never fails: input without an interface line yields no fields.
//
// Brace nesting is not tracked by either scanner, so object literal member
// types are not supported. Lines that do not look like `name[?]: type` are
// skipped silently. Both scanners are pure functions of their input.
package tsiface
