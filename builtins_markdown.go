package avon

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/avon-lang/avon/diag"
)

func init() {
	register(arityDef("markdown_to_html", 1, "markdown", "markdown_to_html s: render Markdown source to HTML.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		s, err := coerceStr("markdown_to_html", args[0], line, col)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if mdErr := goldmark.Convert([]byte(s), &buf); mdErr != nil {
			return nil, diag.New(diag.Eval, line, col, "markdown_to_html: %s", mdErr.Error())
		}
		return VString(buf.String()), nil
	}))

	register(arityDef("md_heading", 2, "markdown", "md_heading level text: a Markdown heading, level 1-6.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindInt {
			return nil, typeError(line, col, "md_heading", "Int", args[0])
		}
		level := args[0].Int
		if level < 1 || level > 6 {
			return nil, diag.New(diag.Eval, line, col, "md_heading: level must be 1-6, got %d", level)
		}
		text, err := coerceStr("md_heading", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString(strings.Repeat("#", int(level)) + " " + text), nil
	}))

	register(arityDef("md_link", 2, "markdown", "md_link text url: a Markdown link.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		text, err := coerceStr("md_link", args[0], line, col)
		if err != nil {
			return nil, err
		}
		url, err := coerceStr("md_link", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString("[" + text + "](" + url + ")"), nil
	}))

	register(arityDef("md_code", 1, "markdown", "md_code text: inline code in backticks.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		text, err := coerceStr("md_code", args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VString("`" + text + "`"), nil
	}))

	register(arityDef("md_list", 1, "markdown", "md_list items: a bulleted Markdown list, one item per line.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindList {
			return nil, typeError(line, col, "md_list", "List", args[0])
		}
		var sb strings.Builder
		for i, v := range args[0].List {
			item, err := coerceStr("md_list", v, line, col)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString("- ")
			sb.WriteString(item)
		}
		return VString(sb.String()), nil
	}))
}
