package common

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

type Encode func(v interface{}, w io.Writer) error

var DefaultEncodes = map[string]Encode{
	"json": func(v interface{}, w io.Writer) error {
		return jsonEncode(v, w, false)
	},
	"prettyjson": func(v interface{}, w io.Writer) error {
		return jsonEncode(v, w, true)
	},
	"yaml": func(v interface{}, w io.Writer) error {
		e := yaml.NewEncoder(w)
		defer e.Close()

		return e.Encode(v)
	},
}

// EncodeNames returns the names of `DefaultEncodes`, like `{json, prettyjson, yaml}`.
func EncodeNames() string {
	var names []string
	for name := range DefaultEncodes {
		names = append(names, name)
	}
	sort.Strings(names)

	return "{" + strings.Join(names, ", ") + "}"
}

func jsonEncode(v interface{}, w io.Writer, pretty bool) error {
	e := json.NewEncoder(w)
	if pretty {
		e.SetIndent("", "  ")
	}

	return e.Encode(&v)
}
