// Package scenario runs (grammar, words, completed-word-index) fixtures
// loaded from YAML against the compiler and matcher, reporting pass/fail
// per case the way the teacher's tester package runs parse fixtures against
// its LALR driver.
package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nihei9/cmplgram/grammar"
	"github.com/nihei9/cmplgram/match"
	"github.com/nihei9/cmplgram/shell"
)

// Candidate is one expected completion in a scenario file.
type Candidate struct {
	Completion  string `yaml:"completion"`
	Description string `yaml:"description,omitempty"`
}

// Case is one named scenario: a grammar, the words typed so far, the index
// of the word under completion, and the candidates expected back.
type Case struct {
	Name               string      `yaml:"name"`
	Grammar            string      `yaml:"grammar"`
	Words              []string    `yaml:"words"`
	CompletedWordIndex int         `yaml:"completed_word_index"`
	Expected           []Candidate `yaml:"expected"`
}

// File is the top-level shape of a scenario YAML document.
type File struct {
	Cases []*Case `yaml:"cases"`
}

// CaseWithMetadata pairs a parsed Case with the file it came from, or the
// parse error if it could not be read at all.
type CaseWithMetadata struct {
	Case     *Case
	FilePath string
	Error    error
}

// ListCases reads path, which may be a single scenario file or a directory
// of them, and returns every case found, or one CaseWithMetadata per
// failure.
func ListCases(path string) []*CaseWithMetadata {
	fi, err := os.Stat(path)
	if err != nil {
		return []*CaseWithMetadata{{FilePath: path, Error: err}}
	}

	if !fi.IsDir() {
		return parseCaseFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return []*CaseWithMetadata{{FilePath: path, Error: err}}
	}
	var all []*CaseWithMetadata
	for _, e := range entries {
		full := filepath.Join(path, e.Name())
		if e.IsDir() {
			all = append(all, ListCases(full)...)
			continue
		}
		if !strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml") {
			continue
		}
		all = append(all, parseCaseFile(full)...)
	}
	return all
}

func parseCaseFile(path string) []*CaseWithMetadata {
	data, err := os.ReadFile(path)
	if err != nil {
		return []*CaseWithMetadata{{FilePath: path, Error: err}}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return []*CaseWithMetadata{{FilePath: path, Error: err}}
	}

	cases := make([]*CaseWithMetadata, len(f.Cases))
	for i, c := range f.Cases {
		cases[i] = &CaseWithMetadata{Case: c, FilePath: path}
	}
	return cases
}

// Result is the outcome of running one case.
type Result struct {
	CasePath string
	Name     string
	Error    error
}

func (r *Result) String() string {
	if r.Error != nil {
		return fmt.Sprintf("FAIL %v (%v): %v", r.Name, r.CasePath, r.Error)
	}
	return fmt.Sprintf("PASS %v (%v)", r.Name, r.CasePath)
}

// Tester runs scenario cases through the grammar compiler and matcher,
// resolving any Any(Command|PATH|DIRECTORY) input through Bridge.
type Tester struct {
	Bridge shell.Bridge
	Cases  []*CaseWithMetadata
}

// Run executes every case and returns one Result per case.
func (t *Tester) Run(ctx context.Context) []*Result {
	results := make([]*Result, len(t.Cases))
	for i, c := range t.Cases {
		results[i] = t.runCase(ctx, c)
	}
	return results
}

func (t *Tester) runCase(ctx context.Context, c *CaseWithMetadata) *Result {
	if c.Error != nil {
		return &Result{CasePath: c.FilePath, Name: c.FilePath, Error: c.Error}
	}

	name := c.Case.Name
	if name == "" {
		name = c.FilePath
	}

	compiled, err := grammar.Compile(c.Case.Grammar)
	if err != nil {
		return &Result{CasePath: c.FilePath, Name: name, Error: fmt.Errorf("compile: %w", err)}
	}

	m := match.New(compiled.DFA, t.Bridge)
	got := m.Complete(ctx, c.Case.Words, c.Case.CompletedWordIndex)

	gotSet := toCandidateSet(got)
	wantSet := toExpectedSet(c.Case.Expected)
	if diff := diffSets(gotSet, wantSet); diff != "" {
		return &Result{CasePath: c.FilePath, Name: name, Error: fmt.Errorf("candidates mismatch:\n%v", diff)}
	}
	return &Result{CasePath: c.FilePath, Name: name}
}

type candidateKey struct {
	completion  string
	description string
}

func toCandidateSet(cs []match.Candidate) map[candidateKey]bool {
	s := make(map[candidateKey]bool, len(cs))
	for _, c := range cs {
		s[candidateKey{completion: c.Completion, description: c.Description}] = true
	}
	return s
}

func toExpectedSet(cs []Candidate) map[candidateKey]bool {
	s := make(map[candidateKey]bool, len(cs))
	for _, c := range cs {
		s[candidateKey{completion: c.Completion, description: c.Description}] = true
	}
	return s
}

func diffSets(got, want map[candidateKey]bool) string {
	var missing, extra []string
	for k := range want {
		if !got[k] {
			missing = append(missing, formatKey(k))
		}
	}
	for k := range got {
		if !want[k] {
			extra = append(extra, formatKey(k))
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return ""
	}
	sort.Strings(missing)
	sort.Strings(extra)
	var b strings.Builder
	if len(missing) > 0 {
		fmt.Fprintf(&b, "  missing: %v\n", missing)
	}
	if len(extra) > 0 {
		fmt.Fprintf(&b, "  unexpected: %v\n", extra)
	}
	return b.String()
}

func formatKey(k candidateKey) string {
	if k.description == "" {
		return k.completion
	}
	return fmt.Sprintf("%v (%v)", k.completion, k.description)
}
