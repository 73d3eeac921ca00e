package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBridge struct {
	commandOutput map[string]string
}

func (f *fakeBridge) ShellOut(ctx context.Context, command string) (string, error) {
	return f.commandOutput[command], nil
}

func (f *fakeBridge) CompletePaths(ctx context.Context, prefix string) (string, error) {
	return "", nil
}

func (f *fakeBridge) CompleteDirectories(ctx context.Context, prefix string) (string, error) {
	return "", nil
}

func writeScenarioFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunPassesWhenCandidatesMatch(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "darcs.yaml", `
cases:
  - name: first word
    grammar: "darcs add --boring --recursive;"
    words: []
    completed_word_index: 0
    expected:
      - completion: add
`)

	cases := ListCases(dir)
	require.Len(t, cases, 1)
	require.NoError(t, cases[0].Error)

	tester := &Tester{Bridge: &fakeBridge{}, Cases: cases}
	results := tester.Run(context.Background())
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Error)
}

func TestRunFailsOnMismatch(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "darcs.yaml", `
cases:
  - name: first word
    grammar: "darcs add --boring --recursive;"
    words: []
    completed_word_index: 0
    expected:
      - completion: remove
`)

	cases := ListCases(dir)
	require.Len(t, cases, 1)

	tester := &Tester{Bridge: &fakeBridge{}, Cases: cases}
	results := tester.Run(context.Background())
	require.Len(t, results, 1)
	assert.Error(t, results[0].Error)
}

func TestRunReportsCompileErrors(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "broken.yaml", `
cases:
  - name: empty grammar
    grammar: ""
    words: []
    completed_word_index: 0
    expected: []
`)

	cases := ListCases(dir)
	require.Len(t, cases, 1)

	tester := &Tester{Bridge: &fakeBridge{}, Cases: cases}
	results := tester.Run(context.Background())
	require.Len(t, results, 1)
	assert.Error(t, results[0].Error)
}

func TestListCasesReportsMissingPath(t *testing.T) {
	cases := ListCases(filepath.Join(t.TempDir(), "missing"))
	require.Len(t, cases, 1)
	assert.Error(t, cases[0].Error)
}

func TestRunWithCommandBackedGrammar(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "cargo.yaml", `
cases:
  - name: after optional toolchain
    grammar: |
      cargo [<toolchain>] (--version | --help);
      <toolchain> ::= { rustup toolchain list };
    words: ["foo"]
    completed_word_index: 1
    expected:
      - completion: "--version"
      - completion: "--help"
`)

	cases := ListCases(dir)
	require.Len(t, cases, 1)

	bridge := &fakeBridge{commandOutput: map[string]string{"rustup toolchain list": "stable\n"}}
	tester := &Tester{Bridge: bridge, Cases: cases}
	results := tester.Run(context.Background())
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Error)
}
