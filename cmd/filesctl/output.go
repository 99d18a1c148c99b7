package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
)

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case "table", "yaml", "json":
		return nil
	default:
		return errors.Errorf("unknown output format %q", outputFormat)
	}
}

// formatOutput renders obj in the requested format. For tables, headers and
// rows are taken from the provided row values.
func formatOutput(
	outputFormat string,
	obj interface{},
	headers []interface{},
	row []interface{},
) (string, error) {
	switch strings.ToLower(outputFormat) {
	case "table":
		table := uitable.New()
		table.AddRow(headers...)
		table.AddRow(row...)
		return table.String(), nil
	case "yaml":
		yamlBytes, err := yaml.Marshal(obj)
		if err != nil {
			return "", errors.Wrap(err, "error formatting output")
		}
		return strings.TrimSuffix(string(yamlBytes), "\n"), nil
	case "json":
		prettyJSON, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "error formatting output")
		}
		return string(prettyJSON), nil
	}
	return "", errors.Errorf("unknown output format %q", outputFormat)
}

func printOutput(
	outputFormat string,
	obj interface{},
	headers []interface{},
	row []interface{},
) error {
	out, err := formatOutput(outputFormat, obj, headers, row)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
