package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/pkg/runtime"
)

// schemaDir is resolved before any test changes the working directory.
var schemaDir string

func TestMain(m *testing.M) {
	dir, err := filepath.Abs(filepath.Join("..", "cimgen", "testdata", "v3"))
	if err != nil {
		panic(err)
	}
	schemaDir = dir
	os.Exit(m.Run())
}

// run executes the root command in an empty working directory so no config
// or .env file is picked up.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--schema-dir", schemaDir, "--version", "cgmes_v3_0_0"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersionAndHelp(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cimgen "+Version+"\n", out)

	out, err = run(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "cgmes_v2_4_15")
	assert.Contains(t, out, "go, jsonld, markdown, python, sql")
}

func TestGenerateCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gen")
	out, err := run(t, "generate", "--lang", "python,markdown", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "markdown")
	assert.Contains(t, out, "python")

	_, err = os.Stat(filepath.Join(dir, "python", "Terminal.py"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "markdown", "README.md"))
	assert.NoError(t, err)
}

func TestGenerateCmd_Invalid(t *testing.T) {
	_, err := run(t, "generate", "--lang", ",", "--out", t.TempDir())
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = run(t, "--version", "cgmes_v4", "generate")
	assert.True(t, errors.Is(err, model.ErrUnsupportedDialect))
}

func TestLogIssues_Ordered(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}}))
	kinds := model.IssueKinds()
	first, last := kinds[0], kinds[len(kinds)-1]
	for range 10 {
		buf.Reset()
		logIssues(logger, map[model.IssueKind]int{last: 1, first: 2})
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "kind="+first.String()+" count=2")
		assert.Contains(t, lines[1], "kind="+last.String()+" count=1")
	}
}

func TestInspectCmd(t *testing.T) {
	out, err := run(t, "inspect", "--class", "Terminal", "--format", "yaml")
	require.NoError(t, err)
	var rec model.ClassRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Terminal", rec.ClassName)
	assert.Equal(t, "EQ", rec.RecommendedClassProfile)
	assert.Equal(t, []string{"EQ", "SV"}, rec.ClassOrigin)

	out, err = run(t, "inspect")
	require.NoError(t, err)
	var d dump
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "cgmes_v3_0_0", d.Version)
	assert.Len(t, d.Profiles, 2)
	assert.NotEmpty(t, d.Classes)

	_, err = run(t, "inspect", "--class", "Nope")
	assert.ErrorContains(t, err, `class "Nope" not found`)

	_, err = run(t, "inspect", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestProfilesCmd(t *testing.T) {
	out, err := run(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "CoreEquipment")
	assert.Contains(t, out, "http://iec.ch/TC57/ns/CIM/StateVariables-EU/3.0")
}

func TestDBCmd(t *testing.T) {
	out, err := run(t, "db", "push", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, `CREATE TYPE "PhaseCode" AS ENUM ('A', 'B');`)
	assert.Contains(t, out, `CREATE TABLE "SvPowerFlow"`)

	_, err = run(t, "db", "push")
	assert.True(t, errors.Is(err, runtime.ErrEmptyDSN))

	_, err = run(t, "db", "status")
	assert.True(t, errors.Is(err, runtime.ErrEmptyDSN))
}
