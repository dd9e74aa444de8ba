package avon

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/avon-lang/avon/diag"
)

// WritePolicy selects what Deploy does when a FileTemplate's target
// already exists on disk.
type WritePolicy int

const (
	// PolicyDefault silently skips a target that already exists.
	PolicyDefault WritePolicy = iota
	// PolicyForce always overwrites the target.
	PolicyForce
	// PolicyAppend appends the rendered body to an existing target,
	// or creates it if absent.
	PolicyAppend
	// PolicyIfNotExists fails loudly if the target already exists,
	// rather than skipping it silently like PolicyDefault.
	PolicyIfNotExists
	// PolicyBackup copies any existing target to "<path>.bak" before
	// overwriting it.
	PolicyBackup
)

// DeployOptions configures a deployment run.
type DeployOptions struct {
	Root      string
	Policy    WritePolicy
	KeepGoing bool
}

// DeployResult records the outcome of deploying a single FileTemplate.
type DeployResult struct {
	Path   string
	Action string // "written", "skipped", "appended", "backed-up"
	Err    *diag.Diagnostic
}

// Deploy walks the program's result value, collecting every
// FileTemplate it contains (at any depth inside Lists and Dicts), and
// writes each one to disk under opts.Root according to opts.Policy.
// When opts.KeepGoing is false, Deploy stops at the first error;
// otherwise it aggregates every result and returns the first error
// only after attempting every template. Every failure is a Deploy-kind
// Diagnostic positioned at the originating file-template expression,
// sharing the uniform shape with the rest of the pipeline.
func Deploy(result *Value, opts DeployOptions) ([]DeployResult, *diag.Diagnostic) {
	templates, err := collectFileTemplates(result)
	if err != nil {
		return nil, err
	}
	results := make([]DeployResult, 0, len(templates))
	var firstErr *diag.Diagnostic
	for _, ft := range templates {
		r := deployOne(ft, opts)
		results = append(results, r)
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			if !opts.KeepGoing {
				return results, firstErr
			}
		}
	}
	return results, firstErr
}

// collectFileTemplates walks v, flattening nested Lists (and Dicts, by
// their values) of FileTemplates (spec §4.7). A bare Template or Path,
// or any other non-FileTemplate, non-container leaf, is rejected
// outright rather than silently dropped. Bare leaves have no retained
// source position, so their diagnostic carries none.
func collectFileTemplates(v *Value) ([]*FileTemplateValue, *diag.Diagnostic) {
	if v == nil {
		return nil, diag.New(diag.Deploy, 0, 0, "cannot deploy bare template or path — use @file {{…}} syntax")
	}
	switch v.Kind {
	case KindFileTemplate:
		return []*FileTemplateValue{v.FileTpl}, nil
	case KindList:
		var out []*FileTemplateValue
		for _, e := range v.List {
			sub, err := collectFileTemplates(e)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	case KindDict:
		var out []*FileTemplateValue
		var firstErr *diag.Diagnostic
		v.Dict.Each(func(_ string, val *Value) {
			if firstErr != nil {
				return
			}
			sub, err := collectFileTemplates(val)
			if err != nil {
				firstErr = err
				return
			}
			out = append(out, sub...)
		})
		if firstErr != nil {
			return nil, firstErr
		}
		return out, nil
	default:
		return nil, diag.New(diag.Deploy, 0, 0, "cannot deploy bare template or path — use @file {{…}} syntax")
	}
}

// resolveTarget joins a FileTemplate's declared path onto root, then
// rejects any result that would land outside root via a "..", per the
// deployment engine's sandboxing rule. escaped reports the rejection
// distinctly so the caller can phrase its diagnostic.
func resolveTarget(root, relPath string) (target string, escaped bool, err error) {
	cleaned := filepath.Join(root, relPath)
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false, err
	}
	absTarget, err := filepath.Abs(cleaned)
	if err != nil {
		return "", false, err
	}
	if absTarget != absRoot && !strings.HasPrefix(absTarget, absRoot+string(filepath.Separator)) {
		return "", true, nil
	}
	return absTarget, false, nil
}

// deployErr builds the positioned Deploy diagnostic for a single
// template's failure.
func deployErr(ft *FileTemplateValue, format string, args ...any) *diag.Diagnostic {
	return diag.New(diag.Deploy, ft.Line, ft.Column, format, args...)
}

func deployOne(ft *FileTemplateValue, opts DeployOptions) DeployResult {
	target, escaped, err := resolveTarget(opts.Root, ft.Target.Text)
	if escaped {
		return DeployResult{Path: ft.Target.Text, Err: deployErr(ft, "target path %q escapes deployment root %q", ft.Target.Text, opts.Root)}
	}
	if err != nil {
		return DeployResult{Path: ft.Target.Text, Err: deployErr(ft, "resolving %q: %s", ft.Target.Text, err.Error())}
	}
	body, renderErr := ft.Body.Render()
	if renderErr != nil {
		return DeployResult{Path: target, Err: deployErr(ft, "rendering %q: %s", ft.Target.Text, renderErr.Error())}
	}

	_, statErr := os.Stat(target)
	exists := statErr == nil

	switch opts.Policy {
	case PolicyDefault:
		if exists {
			return DeployResult{Path: target, Action: "skipped"}
		}
		if err := atomicWrite(target, []byte(body)); err != nil {
			return DeployResult{Path: target, Err: deployErr(ft, "writing %q: %s", target, err.Error())}
		}
		return DeployResult{Path: target, Action: "written"}

	case PolicyIfNotExists:
		if exists {
			return DeployResult{Path: target, Err: deployErr(ft, "target %q already exists", target)}
		}
		if err := atomicWrite(target, []byte(body)); err != nil {
			return DeployResult{Path: target, Err: deployErr(ft, "writing %q: %s", target, err.Error())}
		}
		return DeployResult{Path: target, Action: "written"}

	case PolicyForce:
		if err := atomicWrite(target, []byte(body)); err != nil {
			return DeployResult{Path: target, Err: deployErr(ft, "writing %q: %s", target, err.Error())}
		}
		return DeployResult{Path: target, Action: "written"}

	case PolicyBackup:
		action := "written"
		if exists {
			if err := backupFile(target); err != nil {
				return DeployResult{Path: target, Err: deployErr(ft, "backing up %q: %s", target, err.Error())}
			}
			action = "backed-up"
		}
		if err := atomicWrite(target, []byte(body)); err != nil {
			return DeployResult{Path: target, Err: deployErr(ft, "writing %q: %s", target, err.Error())}
		}
		return DeployResult{Path: target, Action: action}

	case PolicyAppend:
		if err := appendFile(target, []byte(body)); err != nil {
			return DeployResult{Path: target, Err: deployErr(ft, "appending to %q: %s", target, err.Error())}
		}
		return DeployResult{Path: target, Action: "appended"}
	}

	return DeployResult{Path: target, Err: deployErr(ft, "unknown write policy")}
}

// atomicWrite writes data to a temp file in the same directory as
// path, then renames it into place, so a concurrent reader never
// observes a partially-written file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".avon-deploy-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func backupFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return atomicWrite(path+".bak", data)
}

func appendFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}
