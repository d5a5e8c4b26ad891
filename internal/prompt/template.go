// Package prompt builds the model instructions for every query domain. All
// domains share one Template; the per-domain constructors only supply the
// persona, scope lines, output schema and completeness directives.
package prompt

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is one labelled scope or filter value, substituted verbatim.
type Line struct {
	Label string
	Value string
}

// Field is one key of the required output object.
type Field struct {
	Name string
	Type string // e.g. "string", "number", "string (USD)"
}

// Template is a fully parameterised prompt.
type Template struct {
	Persona    string
	Task       string
	Scope      []Line
	Schema     []Field
	Directives []string
}

// Render produces the prompt text. The output is never empty for a template
// with a task.
func (t Template) Render() string {
	var b strings.Builder

	if t.Persona != "" {
		fmt.Fprintf(&b, "Act as %s.\n", t.Persona)
	}
	if t.Task != "" {
		fmt.Fprintf(&b, "TASK: %s\n", t.Task)
	}
	for _, l := range t.Scope {
		fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(l.Label), l.Value)
	}

	if len(t.Schema) > 0 {
		b.WriteString("\nOUTPUT: JSON Array. Use exactly these keys in this order:\n[{\n")
		for i, f := range t.Schema {
			sep := ","
			if i == len(t.Schema)-1 {
				sep = ""
			}
			typ := f.Type
			if !strings.HasPrefix(typ, `"`) {
				typ = strconv.Quote(typ)
			}
			fmt.Fprintf(&b, "  %q: %s%s\n", f.Name, typ, sep)
		}
		b.WriteString("}]\n")
	}

	if len(t.Directives) > 0 {
		b.WriteString("\nCRITICAL:\n")
		for _, d := range t.Directives {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// SchemaKeys returns the output keys in order.
func (t Template) SchemaKeys() []string {
	keys := make([]string, len(t.Schema))
	for i, f := range t.Schema {
		keys[i] = f.Name
	}
	return keys
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
