// Command avon is the command-line entry point: it lexes, parses and
// evaluates .avon source files, and deploys any FileTemplate values the
// program produces to disk.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/avon-lang/avon"
)

var k = koanf.New(".")

func loadConfig(cmd *cobra.Command) error {
	k.Load(confmap(), nil)
	if _, err := os.Stat(".avonrc.yaml"); err == nil {
		if err := k.Load(file.Provider(".avonrc.yaml"), yaml.Parser()); err != nil {
			return fmt.Errorf("loading .avonrc.yaml: %w", err)
		}
	}
	return k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
}

// confmap seeds koanf's lowest-precedence layer: avon's built-in
// defaults, overridable by .avonrc.yaml, in turn overridable by flags.
func confmap() koanf.Provider {
	return defaultsProvider{}
}

type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) { return nil, nil }
func (defaultsProvider) Read() (map[string]interface{}, error) {
	return map[string]interface{}{
		"root":       ".",
		"policy":     "default",
		"keep-going": false,
	}, nil
}

func main() {
	var debug bool

	root := &cobra.Command{
		Use:          "avon",
		Short:        "avon evaluates and deploys .avon configuration programs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")

	root.AddCommand(newRunCmd(), newDeployCmd(), newReplCmd(), newDocCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor implements the CLI's documented exit-code contract: 0 on
// success, 1 on a diagnostic raised while processing the program
// (lex/parse/eval/template/deploy), 2 for everything else (bad flags,
// missing files, internal errors).
func exitCodeFor(err error) int {
	if _, ok := err.(*cliDiagError); ok {
		return 1
	}
	return 2
}

type cliDiagError struct{ msg string }

func (e *cliDiagError) Error() string { return e.msg }

func evalFile(path string, named map[string]*avon.Value, positional []string) (*avon.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	toks, diagErr := avon.Lex(string(src))
	if diagErr != nil {
		return nil, &cliDiagError{diagErr.Error()}
	}
	node, diagErr := avon.ParseTokens(toks)
	if diagErr != nil {
		return nil, &cliDiagError{diagErr.Error()}
	}
	avon.SetSourceDir(filepath.Dir(path))
	avon.SetProgramArgs(positional)
	env := avon.NewGlobalEnv(named)
	val, diagErr := avon.Eval(node, env)
	if diagErr != nil {
		return nil, &cliDiagError{diagErr.Error()}
	}
	return val, nil
}

// parseNamedArgs splits everything after the source file into "-name
// value" pairs (bound into the top-level environment) and bare
// positionals (surfaced by the args builtin). Values stay Strings; a
// program that wants a number calls to_int/to_float itself.
func parseNamedArgs(rest []string) (map[string]*avon.Value, []string, error) {
	named := make(map[string]*avon.Value)
	var positional []string
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if i+1 >= len(rest) {
			return nil, nil, fmt.Errorf("named argument -%s is missing a value", name)
		}
		i++
		named[name] = avon.VString(rest[i])
	}
	return named, positional, nil
}
