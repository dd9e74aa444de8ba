// Package diag defines the single diagnostic shape shared by every stage
// of the avon pipeline (lexer, parser, evaluator, template engine,
// deployment engine), so collaborators such as the CLI and the editor
// adaptor can render any pipeline failure with one code path.
package diag

import (
	"fmt"

	"github.com/samber/oops"
)

// Kind classifies which pipeline stage raised a Diagnostic.
type Kind string

const (
	Lex      Kind = "Lex"
	Parse    Kind = "Parse"
	Eval     Kind = "Eval"
	Template Kind = "Template"
	Deploy   Kind = "Deploy"
)

// Diagnostic is the {message, line, column, kind} shape described by the
// language spec. Line and column are 1-based, matching source positions
// as tracked by the lexer.
type Diagnostic struct {
	Message string
	Line    int
	Column  int
	Kind    Kind

	// err carries the underlying oops-wrapped error so that context
	// (the oops Code and any With(...) fields) survives round trips
	// through errors.As / oops.AsOops for callers that want it.
	err error
}

// New builds a Diagnostic at the given position, wrapping it in an oops
// error coded by kind so the structured fields survive as error context.
func New(kind Kind, line, column int, format string, args ...any) *Diagnostic {
	msg := fmt.Sprintf(format, args...)
	wrapped := oops.
		Code(string(kind)).
		With("line", line).
		With("column", column).
		Errorf("%s", msg)
	return &Diagnostic{
		Message: msg,
		Line:    line,
		Column:  column,
		Kind:    kind,
		err:     wrapped,
	}
}

// Error renders "<kind> at <line>:<column>: <message>", the user-visible
// form every collaborator prints one per line.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", d.Kind, d.Line, d.Column, d.Message)
}

// Unwrap exposes the oops-wrapped error for errors.As/errors.Is chains.
func (d *Diagnostic) Unwrap() error {
	return d.err
}

// ZeroBased returns the 0-based line/column pair the editor diagnostics
// adaptor emits (LSP positions are 0-based; avon's own positions are
// 1-based for human-facing messages).
func (d *Diagnostic) ZeroBased() (line, column int) {
	line = d.Line - 1
	if line < 0 {
		line = 0
	}
	column = d.Column - 1
	if column < 0 {
		column = 0
	}
	return line, column
}
