package avon

import (
	"html"
	"strings"

	"github.com/avon-lang/avon/diag"
)

func init() {
	register(arityDef("html_escape", 1, "html", "html_escape s: escape <, >, &, \" and ' for safe HTML embedding.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("html_escape", args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VString(html.EscapeString(s)), nil
	}))

	register(arityDef("html_attr", 2, "html", "html_attr name value: a quoted, escaped HTML attribute like name=\"value\".", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		name, err := coerceStr("html_attr", args[0], line, col)
		if err != nil {
			return nil, err
		}
		value, err := coerceStr("html_attr", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString(name + `="` + html.EscapeString(value) + `"`), nil
	}))

	register(arityDef("html_tag", 2, "html", "html_tag name content: an element like <name>content</name>; content is not escaped.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		name, err := coerceStr("html_tag", args[0], line, col)
		if err != nil {
			return nil, err
		}
		content, err := coerceStr("html_tag", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strings.Join([]string{"<", name, ">", content, "</", name, ">"}, "")), nil
	}))
}
