package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lpmtscan/internal/report"
)

// writeBlock writes "LPMT", a count and body to a temp file.
func writeBlock(t *testing.T, body ...any) string {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("LPMT")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(1)))
	for _, v := range body {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	return writeFile(t, buf.Bytes())
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.map")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	// Keep a developer's own config file out of the run.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	chdirForTest(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"lpmtscan"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// matrixRecord is a 4x4 matrix with scale 2 and translation (10, 20, 30).
var matrixRecord = []float32{
	2, 0, 0, 0,
	0, 2, 0, 0,
	0, 0, 2, 0,
	10, 20, 30, 1,
}

func TestRun_TextReport(t *testing.T) {
	path := writeBlock(t, matrixRecord, []byte("NEXT"))

	code, out, _ := runCLI(t, path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "LPMT block found at 0x0\n")
	assert.Contains(t, out, "Header entry_count: 1\n")
	assert.Contains(t, out, "Entry 0 @ offset 0x8\n  Layout: 4x4_matrix\n")
	assert.Contains(t, out, "  Pos: [10.000, 20.000, 30.000]\n")
	assert.Contains(t, out, "  Valid: YES\n")
	assert.Contains(t, out, `Next tag "NEXT" at 0x48`)
}

func TestRun_JSONReport(t *testing.T) {
	path := writeBlock(t, matrixRecord)

	code, out, _ := runCLI(t, "--format", "json", path)
	require.Equal(t, exitOK, code)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, path, rep.Source)
	require.Len(t, rep.Entries, 1)
	assert.Equal(t, "4x4_matrix", rep.Entries[0].Layout)
	assert.Equal(t, 64, rep.Entries[0].Size)
	assert.Equal(t, "end_of_buffer", rep.Stop)
}

func TestRun_ConfigFile(t *testing.T) {
	path := writeBlock(t, matrixRecord)
	cfgPath := filepath.Join(t.TempDir(), "lpmtscan.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("report:\n  precision: 1\n"), 0o644))

	code, out, _ := runCLI(t, "--config", cfgPath, path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "  Pos: [10.0, 20.0, 30.0]\n")
}

func TestRun_ZeroPrecisionFlagOverridesConfig(t *testing.T) {
	path := writeBlock(t, matrixRecord)
	cfgPath := filepath.Join(t.TempDir(), "lpmtscan.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("report:\n  precision: 1\n"), 0o644))

	code, out, _ := runCLI(t, "--config", cfgPath, "--precision", "0", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "  Pos: [10, 20, 30]\n")
}

func TestRun_FileNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.map")

	code, out, errOut := runCLI(t, missing)
	assert.Equal(t, exitError, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "File not found: "+missing)
}

func TestRun_DirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := runCLI(t, dir)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "File not found: "+dir)
}

func TestRun_DefaultInput(t *testing.T) {
	code, _, errOut := runCLI(t)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "File not found: test.map")
}

func TestRun_BlockNotFound(t *testing.T) {
	path := writeFile(t, []byte("GRAT no transform block"))

	code, out, errOut := runCLI(t, path)
	assert.Equal(t, exitNotFound, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "LPMT block not found")
}

func TestRun_InvalidFormat(t *testing.T) {
	path := writeBlock(t, matrixRecord)

	code, _, errOut := runCLI(t, "--format", "xml", path)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "invalid config")
}

func TestRun_Layouts(t *testing.T) {
	code, out, _ := runCLI(t, "layouts")
	require.Equal(t, exitOK, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 57) // header + catalog
	assert.Contains(t, lines[1], "4x4_matrix")
	assert.Contains(t, lines[56], "morton_encoded")
}

func TestRun_Probe(t *testing.T) {
	path := writeBlock(t, matrixRecord)

	code, out, _ := runCLI(t, "probe", path, "0x8")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Offset 0x8:")
	assert.Contains(t, out, "4x4_matrix")
	assert.Contains(t, out, "bitpacked")
}

func TestRun_ProbeBadArgs(t *testing.T) {
	path := writeBlock(t, matrixRecord)

	tests := [][]string{
		{"probe", path},
		{"probe", path, "abc"},
		{"probe", path, "-4"},
		{"probe", path, "4096"},
	}
	for _, args := range tests {
		code, _, _ := runCLI(t, args...)
		assert.Equal(t, exitError, code, "args %v", args)
	}
}

// chdirForTest changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
