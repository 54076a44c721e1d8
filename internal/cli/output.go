package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	tableFormat = "table"
	jsonFormat  = "json"
	yamlFormat  = "yaml"
)

var (
	legalOutputTypes = []string{tableFormat, jsonFormat, yamlFormat}
)

func validateOutput(output string, legal []string) error {
	if len(output) > 0 && !funk.ContainsString(legal, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legal, ", "))
	}
	return nil
}

// printStructured writes v as json or yaml. It reports false for any other output.
func printStructured(w io.Writer, output string, v any) (bool, error) {
	switch output {
	case jsonFormat:
		marshalled, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Fprintf(w, "%s\n", string(marshalled))
		return true, nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Fprintf(w, "%s", string(marshalled))
		return true, nil
	default:
		return false, nil
	}
}
