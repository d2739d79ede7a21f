package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/formcheck/internal/presentation/tui"
	"github.com/aretw0/formcheck/pkg/validation"
)

// ReportMarkdown renders a status as a markdown report.
func ReportMarkdown(name string, status validation.Status) string {
	var b strings.Builder

	verdict := "valid"
	if !status.IsValid {
		verdict = "invalid"
	}
	fmt.Fprintf(&b, "# %s: %s\n\n", name, verdict)

	keys := make(map[string]bool)
	for key := range status.Fields {
		keys[key] = true
	}
	for key := range status.Messages {
		keys[key] = true
	}
	if len(keys) == 0 {
		b.WriteString("_No fields._\n")
		return b.String()
	}

	sorted := make([]string, 0, len(keys))
	for key := range keys {
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)

	b.WriteString("| Field | Status | Value | Message |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, key := range sorted {
		state := "missing"
		value := ""
		if f, ok := status.Fields[key]; ok {
			state = "ok"
			if !f.IsValid {
				state = "invalid"
			}
			value = formatValue(f.Value)
		}
		message := ""
		if m, ok := status.Messages[key]; ok {
			message = m.Message
		}
		if key == "" {
			key = "(document)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(key), state, cell(value), cell(message))
	}
	return b.String()
}

// WriteReport writes the report for status in the requested format.
func WriteReport(w io.Writer, name string, status validation.Status, asJSON bool, render tui.Renderer) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	out, err := render(ReportMarkdown(name, status))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return fmt.Sprintf("%q", t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
