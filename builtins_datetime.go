package avon

import (
	"strconv"
	"strings"
	"time"

	"github.com/avon-lang/avon/diag"
)

// parseAvonDuration parses a "<integer><unit>" duration string with
// units s m h d w y. Years are 365 days; calendar-aware arithmetic is
// out of scope for a duration literal this shape.
func parseAvonDuration(s string) (time.Duration, bool) {
	if len(s) < 2 {
		return 0, false
	}
	unit := s[len(s)-1]
	n, err := strconv.ParseInt(strings.TrimSpace(s[:len(s)-1]), 10, 64)
	if err != nil {
		return 0, false
	}
	switch unit {
	case 's':
		return time.Duration(n) * time.Second, true
	case 'm':
		return time.Duration(n) * time.Minute, true
	case 'h':
		return time.Duration(n) * time.Hour, true
	case 'd':
		return time.Duration(n) * 24 * time.Hour, true
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, true
	case 'y':
		return time.Duration(n) * 365 * 24 * time.Hour, true
	}
	return 0, false
}

func parseTimestampArg(fnName string, v *Value, line, col int) (time.Time, *diag.Diagnostic) {
	if v.Kind != KindString {
		return time.Time{}, typeError(line, col, fnName, "String (RFC3339 timestamp)", v)
	}
	t, err := time.Parse(time.RFC3339, v.Str)
	if err != nil {
		return time.Time{}, diag.New(diag.Eval, line, col, "%s: %s", fnName, err.Error())
	}
	return t, nil
}

// No third-party date/time library surfaces anywhere in the example
// pack, so this sticks to the standard library's time package, which
// is itself the idiomatic ecosystem choice for this concern.
func init() {
	register(arityDef("now", 0, "datetime", "now: the current UTC time as RFC3339 text.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VString(time.Now().UTC().Format(time.RFC3339)), nil
	}))

	register(arityDef("timestamp", 0, "datetime", "timestamp: the current Unix time in seconds.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VInt(time.Now().Unix()), nil
	}))

	register(arityDef("timezone", 0, "datetime", "timezone: the host's offset from UTC as \"+HH:MM\" text.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		return VString(time.Now().Format("-07:00")), nil
	}))

	register(arityDef("format_date", 2, "datetime", "format_date layout rfc3339: reformat a timestamp using a Go-style layout string.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		layout := args[0]
		if layout.Kind != KindString {
			return nil, typeError(line, col, "format_date", "String", layout)
		}
		t, err := parseTimestampArg("format_date", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VString(t.Format(layout.Str)), nil
	}))

	register(arityDef("date_parse", 2, "datetime", "date_parse layout s: parse s using a Go-style layout string, returning RFC3339 text.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		layout, s := args[0], args[1]
		if layout.Kind != KindString || s.Kind != KindString {
			return nil, typeError(line, col, "date_parse", "String", s)
		}
		t, err := time.Parse(layout.Str, s.Str)
		if err != nil {
			return nil, diag.New(diag.Eval, line, col, "date_parse: %s", err.Error())
		}
		return VString(t.Format(time.RFC3339)), nil
	}))

	register(arityDef("date_add", 2, "datetime", "date_add rfc3339 dur: shift a timestamp by a duration like \"2h\" or \"1w\" (units s m h d w y).", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		t, err := parseTimestampArg("date_add", args[0], line, col)
		if err != nil {
			return nil, err
		}
		if args[1].Kind != KindString {
			return nil, typeError(line, col, "date_add", "String duration", args[1])
		}
		d, ok := parseAvonDuration(args[1].Str)
		if !ok {
			return nil, diag.New(diag.Eval, line, col, "date_add: invalid duration %q, want <integer><unit> with unit s, m, h, d, w or y", args[1].Str)
		}
		return VString(t.Add(d).Format(time.RFC3339)), nil
	}))

	register(arityDef("date_diff", 2, "datetime", "date_diff later earlier: whole seconds between two timestamps, negative if later precedes earlier.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		later, err := parseTimestampArg("date_diff", args[0], line, col)
		if err != nil {
			return nil, err
		}
		earlier, err := parseTimestampArg("date_diff", args[1], line, col)
		if err != nil {
			return nil, err
		}
		return VInt(int64(later.Sub(earlier) / time.Second)), nil
	}))
}
