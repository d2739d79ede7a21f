package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formcheck/internal/cli"
	"github.com/aretw0/formcheck/internal/config"
	"github.com/aretw0/formcheck/internal/logging"
	"github.com/aretw0/formcheck/internal/presentation/tui"
	"github.com/aretw0/formcheck/pkg/validation"
)

const profileSchema = `
name: string
age: int?
`

func fileConfig(t *testing.T, dir string) config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{
		"FORMCHECK_SCHEMA_DIR": dir,
		"FORMCHECK_DIALECT":    config.DialectTypeMap,
	})
	require.NoError(t, err)
	return cfg
}

func TestNewEngine_LoadsFileStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.yaml"), []byte(profileSchema), 0o644))

	eng, closeStore, err := cli.NewEngine(context.Background(), fileConfig(t, dir), logging.NewNop())
	require.NoError(t, err)
	defer closeStore()

	assert.Equal(t, []string{"profile"}, eng.Registry().Names())

	status, err := eng.Validate("profile", map[string]any{"age": "3"})
	require.NoError(t, err)
	assert.False(t, status.IsValid)
	assert.Contains(t, status.Messages, "name")
}

func TestNewEngine_BrokenDocumentIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.yaml"), []byte(profileSchema), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: nosuchtype"), 0o644))

	eng, closeStore, err := cli.NewEngine(context.Background(), fileConfig(t, dir), logging.NewNop())
	require.NoError(t, err)
	defer closeStore()

	assert.Equal(t, []string{"profile"}, eng.Registry().Names())
}

func TestNewEngine_MemoryStore(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"FORMCHECK_STORE": config.StoreMemory})
	require.NoError(t, err)

	eng, closeStore, err := cli.NewEngine(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer closeStore()

	_, err = eng.Register(context.Background(), "card", []byte(`{"type": "object", "properties": {"number": {"type": "string", "format": "card-number"}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"card"}, eng.Registry().Names())
}

func TestReadDocument(t *testing.T) {
	doc, err := cli.ReadDocument("", strings.NewReader(`{"name": "Ada"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada"}, doc)

	doc, err = cli.ReadDocument("-", strings.NewReader("name: Ada\nage: 36\n"))
	require.NoError(t, err)
	assert.Equal(t, "Ada", doc["name"])

	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"age": 3}`), 0o644))
	doc, err = cli.ReadDocument(path, nil)
	require.NoError(t, err)
	assert.Contains(t, doc, "age")

	_, err = cli.ReadDocument("", strings.NewReader("- a\n- b\n"))
	assert.ErrorContains(t, err, "invalid document")

	_, err = cli.ReadDocument(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func invalidStatus() validation.Status {
	return validation.Status{
		Validated: true,
		IsValid:   false,
		Fields: map[string]validation.Field{
			"age": {IsValid: false, Value: "old"},
		},
		Messages: map[string]validation.Message{
			"age":  {Message: "Age must be of type int"},
			"name": {Message: "Name is required"},
		},
	}
}

func TestReportMarkdown(t *testing.T) {
	report := cli.ReportMarkdown("profile", invalidStatus())

	assert.Contains(t, report, "# profile: invalid")
	assert.Contains(t, report, `| age | invalid | "old" | Age must be of type int |`)
	assert.Contains(t, report, "| name | missing |  | Name is required |")
	assert.Less(t, strings.Index(report, "| age"), strings.Index(report, "| name"))

	empty := cli.ReportMarkdown("profile", validation.Status{Validated: true, IsValid: true})
	assert.Contains(t, empty, "# profile: valid")
	assert.Contains(t, empty, "_No fields._")
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cli.WriteReport(&buf, "profile", invalidStatus(), false, tui.PlainRenderer))
	assert.Contains(t, buf.String(), "Name is required")

	buf.Reset()
	require.NoError(t, cli.WriteReport(&buf, "profile", invalidStatus(), true, tui.PlainRenderer))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["isValid"])
}

func TestCheckCard(t *testing.T) {
	checks := cli.CheckCard("4242424242424242", "", "", "12")

	require.Len(t, checks, 2)
	assert.Equal(t, cli.CardCheck{Field: "number", Value: "4242424242424242", Valid: true}, checks[0])
	assert.Equal(t, "cvv", checks[1].Field)
	assert.False(t, checks[1].Valid)

	assert.Empty(t, cli.CheckCard("", "", "", ""))
}
