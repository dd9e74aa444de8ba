package avon

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/avon-lang/avon/diag"
)

// placeholderPattern matches the {{key}} markers fill_template
// substitutes; unknown keys are left verbatim.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// commitHashPattern validates import_git's pinned-revision argument.
var commitHashPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// sourceDir tracks the directory of the program currently being
// evaluated, so that relative Path literals resolve against the
// source file's directory rather than the process's working
// directory, per spec §4.5's File I/O bullet. The evaluator is
// single-threaded and strict (spec §5), so a package-level var set
// once per top-level Eval is sufficient; pmap/pfilter/pfold only
// parallelize pure per-element application, never file resolution.
var sourceDirMu sync.RWMutex
var sourceDir = "."

// SetSourceDir records the directory relative Path literals and
// `import` resolve against. The CLI calls it before evaluating a file
// and `import` calls it for the imported file; the REPL and the lsp
// package do not, so their sources resolve against the default ".".
func SetSourceDir(dir string) {
	sourceDirMu.Lock()
	defer sourceDirMu.Unlock()
	if dir == "" {
		dir = "."
	}
	sourceDir = dir
}

func currentSourceDir() string {
	sourceDirMu.RLock()
	defer sourceDirMu.RUnlock()
	return sourceDir
}

// resolvePathArg extracts a filesystem path from a String or Path
// argument. A Path literal is always relative (spec §3's invariant)
// and is resolved against the current source directory; a String
// argument is honoured as-is, absolute or relative to the process cwd,
// matching spec §4.5's "absolute paths supplied as strings are
// honoured" rule.
func resolvePathArg(fnName string, v *Value, line, col int) (string, *diag.Diagnostic) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindPath:
		if v.Path.Relative {
			return filepath.Join(currentSourceDir(), v.Path.Text), nil
		}
		return v.Path.Text, nil
	}
	return "", typeError(line, col, fnName, "String or Path", v)
}

// pathText returns an argument's textual path without resolving it:
// basename/dirname/relpath manipulate path text, so a relative Path
// literal keeps its written form rather than being joined onto the
// source directory.
func pathText(fnName string, v *Value, line, col int) (string, *diag.Diagnostic) {
	if v.Kind == KindPath {
		return v.Path.Text, nil
	}
	return coerceStr(fnName, v, line, col)
}

func init() {
	register(arityDef("readfile", 1, "fileio", "readfile path: read a file's contents as a String.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := resolvePathArg("readfile", args[0], line, col)
		if err != nil {
			return nil, err
		}
		data, ioErr := os.ReadFile(p)
		if ioErr != nil {
			return nil, diag.New(diag.Eval, line, col, "readfile: %s", ioErr.Error())
		}
		return VString(string(data)), nil
	}))

	register(arityDef("readlines", 1, "fileio", "readlines path: read a file's contents as a List of Strings, one per line.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := resolvePathArg("readlines", args[0], line, col)
		if err != nil {
			return nil, err
		}
		data, ioErr := os.ReadFile(p)
		if ioErr != nil {
			return nil, diag.New(diag.Eval, line, col, "readlines: %s", ioErr.Error())
		}
		text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		var lines []*Value
		if text != "" {
			for _, l := range strings.Split(text, "\n") {
				lines = append(lines, VString(l))
			}
		}
		return VList(lines), nil
	}))

	register(arityDef("exists", 1, "fileio", "exists path: true if a file or directory exists at path.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := resolvePathArg("exists", args[0], line, col)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(p)
		return VBool(statErr == nil), nil
	}))

	register(arityDef("walkdir", 1, "fileio", "walkdir path: every non-directory entry beneath path, depth-first in lexical order, as Strings.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := resolvePathArg("walkdir", args[0], line, col)
		if err != nil {
			return nil, err
		}
		var out []*Value
		walkErr := filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				out = append(out, VString(path))
			}
			return nil
		})
		if walkErr != nil {
			return nil, diag.New(diag.Eval, line, col, "walkdir: %s", walkErr.Error())
		}
		return VList(out), nil
	}))

	register(arityDef("basename", 1, "fileio", "basename path: the final path element.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := pathText("basename", args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VString(filepath.Base(p)), nil
	}))

	register(arityDef("dirname", 1, "fileio", "dirname path: all but the final path element.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := pathText("dirname", args[0], line, col)
		if err != nil {
			return nil, err
		}
		return VString(filepath.Dir(p)), nil
	}))

	register(arityDef("abspath", 1, "fileio", "abspath path: path made absolute; a Path literal resolves against the current source directory, a String against the working directory.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := resolvePathArg("abspath", args[0], line, col)
		if err != nil {
			return nil, err
		}
		abs, absErr := filepath.Abs(p)
		if absErr != nil {
			return nil, diag.New(diag.Eval, line, col, "abspath: %s", absErr.Error())
		}
		return VString(abs), nil
	}))

	register(arityDef("relpath", 2, "fileio", "relpath base target: target expressed relative to base.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		base, err := pathText("relpath", args[0], line, col)
		if err != nil {
			return nil, err
		}
		target, err := pathText("relpath", args[1], line, col)
		if err != nil {
			return nil, err
		}
		rel, relErr := filepath.Rel(base, target)
		if relErr != nil {
			return nil, diag.New(diag.Eval, line, col, "relpath: %s", relErr.Error())
		}
		return VString(rel), nil
	}))

	register(arityDef("fill_template", 2, "fileio", "fill_template path values: read a file and substitute its {{key}} placeholders from a Dict or List of [key, value] pairs.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := resolvePathArg("fill_template", args[0], line, col)
		if err != nil {
			return nil, err
		}
		data, ioErr := os.ReadFile(p)
		if ioErr != nil {
			return nil, diag.New(diag.Eval, line, col, "fill_template: %s", ioErr.Error())
		}
		subs := map[string]string{}
		switch args[1].Kind {
		case KindDict:
			args[1].Dict.Each(func(k string, v *Value) {
				subs[k] = v.ToDisplayString()
			})
		case KindList:
			for i, pair := range args[1].List {
				if pair.Kind != KindList || len(pair.List) != 2 || pair.List[0].Kind != KindString {
					return nil, diag.New(diag.Eval, line, col, "fill_template: element %d is not a [key, value] pair", i)
				}
				subs[pair.List[0].Str] = pair.List[1].ToDisplayString()
			}
		default:
			return nil, typeError(line, col, "fill_template", "Dict or List of pairs", args[1])
		}
		filled := placeholderPattern.ReplaceAllStringFunc(string(data), func(m string) string {
			key := strings.TrimSpace(m[2 : len(m)-2])
			if v, ok := subs[key]; ok {
				return v
			}
			return m
		})
		return VString(filled), nil
	}))

	register(arityDef("import_git", 2, "fileio", "import_git repo commit: fetch \"owner/repo/path/file.avon\" at a full commit hash from GitHub, then evaluate it.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		repoPath, commit := args[0], args[1]
		if repoPath.Kind != KindString || commit.Kind != KindString {
			return nil, typeError(line, col, "import_git", "String", repoPath)
		}
		if !commitHashPattern.MatchString(commit.Str) {
			return nil, diag.New(diag.Eval, line, col, "import_git: commit must be a full 40-character hash, got %q", commit.Str)
		}
		parts := strings.SplitN(repoPath.Str, "/", 3)
		if len(parts) != 3 {
			return nil, diag.New(diag.Eval, line, col, "import_git: repository path must look like \"owner/repo/path/to/file\", got %q", repoPath.Str)
		}
		url := "https://raw.githubusercontent.com/" + parts[0] + "/" + parts[1] + "/" + commit.Str + "/" + parts[2]
		resp, httpErr := http.Get(url)
		if httpErr != nil {
			return nil, diag.New(diag.Eval, line, col, "import_git: %s", httpErr.Error())
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, diag.New(diag.Eval, line, col, "import_git: %s returned %s", url, resp.Status)
		}
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, diag.New(diag.Eval, line, col, "import_git: %s", readErr.Error())
		}
		toks, lexErr := Lex(string(body))
		if lexErr != nil {
			return nil, lexErr
		}
		node, parseErr := ParseTokens(toks)
		if parseErr != nil {
			return nil, parseErr
		}
		return Eval(node, NewGlobalEnv(nil))
	}))

	register(arityDef("import", 1, "fileio", "import path: tokenize, parse and evaluate another source file, returning its value.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		p, err := resolvePathArg("import", args[0], line, col)
		if err != nil {
			return nil, err
		}
		data, ioErr := os.ReadFile(p)
		if ioErr != nil {
			return nil, diag.New(diag.Eval, line, col, "import: %s", ioErr.Error())
		}
		toks, lexErr := Lex(string(data))
		if lexErr != nil {
			return nil, lexErr
		}
		node, parseErr := ParseTokens(toks)
		if parseErr != nil {
			return nil, parseErr
		}
		prevDir := currentSourceDir()
		SetSourceDir(filepath.Dir(p))
		defer SetSourceDir(prevDir)
		return Eval(node, NewGlobalEnv(nil))
	}))
}
