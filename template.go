package avon

import (
	"strings"

	"github.com/avon-lang/avon/diag"
)

// Template is a compiled file-template body: the literal text and
// placeholder expressions of an "@path {{ ... }}" construct, with every
// placeholder already evaluated against the environment captured at
// the point the FileTemplateExpr was built (spec §4.6: splicing is
// eager, matching the language's strict evaluation model throughout).
type Template struct {
	parts []string
}

// compileTemplate evaluates every placeholder segment once, in order,
// and freezes the result into a Template ready for Render or deploy.
func compileTemplate(segments []TemplateSegment, env *Env) (*Template, *diag.Diagnostic) {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if !seg.IsExpr {
			parts = append(parts, seg.Text)
			continue
		}
		v, err := Eval(seg.Expr, env)
		if err != nil {
			// A failing placeholder is a template error pinned to the
			// placeholder, whatever stage the inner failure came from.
			return nil, diag.New(diag.Template, seg.ExprLine, seg.ExprCol, "%s", err.Message)
		}
		parts = append(parts, v.ToDisplayString())
	}
	return &Template{parts: parts}, nil
}

// Render concatenates the compiled segments into the template's final
// text. Since every placeholder was already evaluated at compile time,
// Render cannot itself fail; it returns an error only to match the
// signature callers (to_string, deploy) expect from a rendering step.
func (t *Template) Render() (string, error) {
	return strings.Join(t.parts, ""), nil
}
