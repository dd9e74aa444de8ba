// Package lsp adapts avon's lex/parse/eval pipeline to the shape an
// editor integration needs: zero-based positions and a uniform
// Diagnostic list instead of the CLI's one-error-and-stop behaviour.
package lsp

import (
	"github.com/avon-lang/avon"
	"github.com/avon-lang/avon/diag"
)

// Severity mirrors the subset of LSP's DiagnosticSeverity an avon
// source file can produce; avon has no "warning" level today, only
// hard errors.
type Severity int

const (
	SeverityError Severity = 1
)

// Diagnostic is a single reported problem, already converted to the
// zero-based line/column convention editors expect.
type Diagnostic struct {
	Message  string
	Line     int
	Column   int
	Severity Severity
	Source   string
	Stage    string
}

// Check runs the full pipeline over src and returns every diagnostic it
// produced, including render-time template errors found by walking the
// evaluated value. avon stops at the first error within a single stage,
// so at most one Diagnostic is returned today; the slice return type is
// kept so a future multi-error pass (e.g. collecting every lex error
// before parsing) doesn't change callers.
func Check(src string) []Diagnostic {
	toks, d := avon.Lex(src)
	if d != nil {
		return []Diagnostic{fromDiag(d)}
	}
	node, d := avon.ParseTokens(toks)
	if d != nil {
		return []Diagnostic{fromDiag(d)}
	}
	env := avon.NewGlobalEnv(nil)
	val, d := avon.Eval(node, env)
	if d != nil {
		return []Diagnostic{fromDiag(d)}
	}
	return WalkTemplates(val)
}

// Tokenize exposes the lexer alone, for editors that want syntax
// highlighting without paying for a full parse.
func Tokenize(src string) ([]avon.Token, *Diagnostic) {
	toks, d := avon.Lex(src)
	if d != nil {
		diag := fromDiag(d)
		return nil, &diag
	}
	return toks, nil
}

// Parse exposes lexing plus parsing, for editors that want an AST-level
// check without evaluating the program.
func Parse(src string) (avon.Node, *Diagnostic) {
	node, d := avon.Parse(src)
	if d != nil {
		diag := fromDiag(d)
		return nil, &diag
	}
	return node, nil
}

// WalkTemplates visits every FileTemplate reachable from v (through
// Lists and Dicts) and collects any render-time diagnostic each body
// produces. Placeholders are evaluated when a file-template expression
// is built and Template.Render never returns an error, so the walk
// currently reports nothing, but the editor contract calls for the walk
// regardless.
func WalkTemplates(v *avon.Value) []Diagnostic {
	var out []Diagnostic
	walkValue(v, &out)
	return out
}

func walkValue(v *avon.Value, out *[]Diagnostic) {
	if v == nil {
		return
	}
	switch v.Kind {
	case avon.KindFileTemplate:
		if _, err := v.FileTpl.Body.Render(); err != nil {
			*out = append(*out, Diagnostic{
				Message:  err.Error(),
				Severity: SeverityError,
				Source:   "avon",
				Stage:    string(diag.Template),
			})
		}
	case avon.KindList:
		for _, e := range v.List {
			walkValue(e, out)
		}
	case avon.KindDict:
		v.Dict.Each(func(_ string, val *avon.Value) {
			walkValue(val, out)
		})
	}
}

func fromDiag(d *diag.Diagnostic) Diagnostic {
	line, col := d.ZeroBased()
	return Diagnostic{
		Message:  d.Message,
		Line:     line,
		Column:   col,
		Severity: SeverityError,
		Source:   "avon",
		Stage:    string(d.Kind),
	}
}

// CompletionNames returns every builtin name, for an editor's
// completion provider.
func CompletionNames() []string {
	defs := avon.ListBuiltins()
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Name
	}
	return out
}
