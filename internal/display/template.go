package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// ExpandTemplate expands a template string using the provided data.
// Strings without template markers are returned as-is.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	if !strings.Contains(tmplStr, "{{") {
		return tmplStr, nil
	}

	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// ValidateTemplate reports whether tmplStr parses.
func ValidateTemplate(tmplStr string) error {
	if _, err := template.New("").Funcs(templateFuncs).Parse(tmplStr); err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	return nil
}
