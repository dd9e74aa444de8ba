package avon

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/avon-lang/avon/diag"
)

// readParseInput resolves a String or Path argument to a file on disk
// and returns its contents. The parsing builtins read file paths, not
// document strings; any parse failure downstream names the file.
func readParseInput(fnName string, v *Value, line, col int) (path string, data []byte, err *diag.Diagnostic) {
	path, err = resolvePathArg(fnName, v, line, col)
	if err != nil {
		return "", nil, err
	}
	raw, ioErr := os.ReadFile(path)
	if ioErr != nil {
		return "", nil, diag.New(diag.Eval, line, col, "%s: %s", fnName, ioErr.Error())
	}
	return path, raw, nil
}

func init() {
	register(arityDef("json_parse", 1, "parsing", "json_parse path: read and decode a JSON file into a Value.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		path, data, err := readParseInput("json_parse", args[0], line, col)
		if err != nil {
			return nil, err
		}
		var decoded any
		if jsonErr := json.Unmarshal(data, &decoded); jsonErr != nil {
			return nil, diag.New(diag.Eval, line, col, "json_parse: %s: %s", path, jsonErr.Error())
		}
		return fromGo(decoded), nil
	}))

	register(arityDef("yaml_parse", 1, "parsing", "yaml_parse path: read and decode a YAML file into a Value.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		path, data, err := readParseInput("yaml_parse", args[0], line, col)
		if err != nil {
			return nil, err
		}
		var decoded any
		if yamlErr := yaml.Unmarshal(data, &decoded); yamlErr != nil {
			return nil, diag.New(diag.Eval, line, col, "yaml_parse: %s: %s", path, yamlErr.Error())
		}
		return fromGo(decoded), nil
	}))

	register(arityDef("yaml_dump", 1, "parsing", "yaml_dump x: encode a Value as YAML text.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		out, err := yaml.Marshal(toGo(args[0]))
		if err != nil {
			return nil, diag.New(diag.Eval, line, col, "yaml_dump: %s", err.Error())
		}
		return VString(string(out)), nil
	}))

	register(arityDef("toml_parse", 1, "parsing", "toml_parse path: read and decode a TOML file into a Value.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		path, data, err := readParseInput("toml_parse", args[0], line, col)
		if err != nil {
			return nil, err
		}
		var decoded map[string]any
		if _, tomlErr := toml.Decode(string(data), &decoded); tomlErr != nil {
			return nil, diag.New(diag.Eval, line, col, "toml_parse: %s: %s", path, tomlErr.Error())
		}
		return fromGo(decoded), nil
	}))

	register(arityDef("toml_dump", 1, "parsing", "toml_dump x: encode a Dict as TOML text.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		if args[0].Kind != KindDict {
			return nil, typeError(line, col, "toml_dump", "Dict", args[0])
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(toGo(args[0])); err != nil {
			return nil, diag.New(diag.Eval, line, col, "toml_dump: %s", err.Error())
		}
		return VString(buf.String()), nil
	}))

	register(arityDef("csv_parse", 1, "parsing", "csv_parse path: read and decode a CSV file into a List of row Lists.", func(args []*Value, line, col int) (*Value, *diag.Diagnostic) {
		path, data, err := readParseInput("csv_parse", args[0], line, col)
		if err != nil {
			return nil, err
		}
		r := csv.NewReader(strings.NewReader(string(data)))
		records, csvErr := r.ReadAll()
		if csvErr != nil {
			return nil, diag.New(diag.Eval, line, col, "csv_parse: %s: %s", path, csvErr.Error())
		}
		rows := make([]*Value, len(records))
		for i, rec := range records {
			cells := make([]*Value, len(rec))
			for j, c := range rec {
				cells[j] = VString(c)
			}
			rows[i] = VList(cells)
		}
		return VList(rows), nil
	}))
}
