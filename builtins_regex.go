package avon

import (
	"regexp"

	"github.com/gobwas/glob"

	"github.com/avon-lang/avon/diag"
)

// No third-party regex engine appears anywhere in the example pack, so
// this uses regexp from the standard library; everything else in this
// file that the pack does cover (shell-style globbing) uses gobwas/glob.
func init() {
	register(arityDef("regex_match", 2, "regex", "regex_match pattern s: true if pattern matches anywhere in s.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		pattern, s := args[0], args[1]
		if pattern.Kind != KindString || s.Kind != KindString {
			return nil, typeError(line, col, "regex_match", "String", s)
		}
		re, err := regexp.Compile(pattern.Str)
		if err != nil {
			return nil, diag.New(diag.Eval, line, col, "regex_match: %s", err.Error())
		}
		return VBool(re.MatchString(s.Str)), nil
	}))

	register(arityDef("regex_replace", 3, "regex", "regex_replace pattern repl s: replace every match of pattern in s.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		pattern, repl, s := args[0], args[1], args[2]
		for _, v := range []*Value{pattern, repl, s} {
			if v.Kind != KindString {
				return nil, typeError(line, col, "regex_replace", "String", v)
			}
		}
		re, err := regexp.Compile(pattern.Str)
		if err != nil {
			return nil, diag.New(diag.Eval, line, col, "regex_replace: %s", err.Error())
		}
		return VString(re.ReplaceAllString(s.Str, repl.Str)), nil
	}))

	register(arityDef("regex_find_all", 2, "regex", "regex_find_all pattern s: every non-overlapping match.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		pattern, s := args[0], args[1]
		if pattern.Kind != KindString || s.Kind != KindString {
			return nil, typeError(line, col, "regex_find_all", "String", s)
		}
		re, err := regexp.Compile(pattern.Str)
		if err != nil {
			return nil, diag.New(diag.Eval, line, col, "regex_find_all: %s", err.Error())
		}
		matches := re.FindAllString(s.Str, -1)
		out := make([]*Value, len(matches))
		for i, m := range matches {
			out[i] = VString(m)
		}
		return VList(out), nil
	}))

	register(arityDef("scan", 2, "regex", "scan pattern s: every match; bare strings if pattern has no groups, else a List of per-match capture Lists.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		pattern, s := args[0], args[1]
		if pattern.Kind != KindString || s.Kind != KindString {
			return nil, typeError(line, col, "scan", "String", s)
		}
		re, reErr := regexp.Compile(pattern.Str)
		if reErr != nil {
			return nil, diag.New(diag.Eval, line, col, "scan: %s", reErr.Error())
		}
		if re.NumSubexp() == 0 {
			matches := re.FindAllString(s.Str, -1)
			out := make([]*Value, len(matches))
			for i, m := range matches {
				out[i] = VString(m)
			}
			return VList(out), nil
		}
		matches := re.FindAllStringSubmatch(s.Str, -1)
		out := make([]*Value, len(matches))
		for i, m := range matches {
			groups := make([]*Value, len(m)-1)
			for j, g := range m[1:] {
				groups[j] = VString(g)
			}
			out[i] = VList(groups)
		}
		return VList(out), nil
	}))

	register(arityDef("regex_split", 2, "regex", "regex_split pattern s: split s at every match of pattern.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		pattern, s := args[0], args[1]
		if pattern.Kind != KindString || s.Kind != KindString {
			return nil, typeError(line, col, "regex_split", "String", s)
		}
		re, err := regexp.Compile(pattern.Str)
		if err != nil {
			return nil, diag.New(diag.Eval, line, col, "regex_split: %s", err.Error())
		}
		parts := re.Split(s.Str, -1)
		out := make([]*Value, len(parts))
		for i, p := range parts {
			out[i] = VString(p)
		}
		return VList(out), nil
	}))

	register(arityDef("glob", 2, "regex", "glob pattern s: shell-style glob match (e.g. \"*.txt\").", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		pattern, s := args[0], args[1]
		if pattern.Kind != KindString || s.Kind != KindString {
			return nil, typeError(line, col, "glob", "String", s)
		}
		g, err := glob.Compile(pattern.Str)
		if err != nil {
			return nil, diag.New(diag.Eval, line, col, "glob: %s", err.Error())
		}
		return VBool(g.Match(s.Str)), nil
	}))
}
