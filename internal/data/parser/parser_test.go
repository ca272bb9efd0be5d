package parser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCaseFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))
	return path
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantName   string
		wantInput  []int
		wantOutput *int
		wantErr    bool
	}{
		{
			name:       "json object with output",
			line:       `{"name":"shoulder","input":[9,7,7,10,4,8],"output":4}`,
			wantName:   "shoulder",
			wantInput:  []int{9, 7, 7, 10, 4, 8},
			wantOutput: intPtr(4),
		},
		{
			name:      "json object without output",
			line:      `{"input":[1,2,3]}`,
			wantInput: []int{1, 2, 3},
		},
		{
			name:      "bare json array",
			line:      `[8, 6, 2, 5]`,
			wantInput: []int{8, 6, 2, 5},
		},
		{
			name:      "whitespace separated",
			line:      "  8 6\t2 5  ",
			wantInput: []int{8, 6, 2, 5},
		},
		{
			name:      "comma separated with negatives",
			line:      "-3,-1, -2,0",
			wantInput: []int{-3, -1, -2, 0},
		},
		{name: "not a number", line: "1 two 3", wantErr: true},
		{name: "broken json", line: `{"input":[1,2`, wantErr: true},
		{name: "empty input", line: `{"input":[]}`, wantErr: true},
		{name: "empty array", line: `[]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseLine([]byte(tt.line))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantInput, c.Input)
			assert.Equal(t, tt.wantOutput, c.Output)
		})
	}
}

func TestParseLineBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "# comment", "  # indented comment"} {
		_, err := ParseLine([]byte(line))
		assert.ErrorIs(t, err, ErrBlankLine, "line %q", line)
	}
}

func TestParseValues(t *testing.T) {
	seq, err := ParseValues([]string{"9", "7,7", "10", "4,8"})
	require.NoError(t, err)
	assert.Equal(t, []int{9, 7, 7, 10, 4, 8}, seq)

	_, err = ParseValues([]string{"1", "x"})
	assert.Error(t, err)

	seq, err = ParseValues(nil)
	require.NoError(t, err)
	assert.Empty(t, seq)
}

func TestParserParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCaseFile(t, dir, "cases.jsonl",
		`# regression cases`,
		`{"name":"descent","input":[8,6,2,5],"output":3}`,
		``,
		`not valid at all`,
		`[1,2,3]`,
		`5 5 5`,
	)

	p := NewParser(2)
	cases, err := p.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, "descent", cases[0].Name)
	assert.Equal(t, 3, *cases[0].Output)
	assert.Equal(t, "cases.jsonl:5", cases[1].Name)
	assert.Equal(t, []int{1, 2, 3}, cases[1].Input)
	assert.Equal(t, "cases.jsonl:6", cases[2].Name)
	assert.Nil(t, cases[2].Output)
}

func TestParserParseFileCachesUntilForgotten(t *testing.T) {
	dir := t.TempDir()
	path := writeCaseFile(t, dir, "cases.jsonl", `[1,2]`)

	p := NewParser(1)
	first, err := p.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, first, 1)

	writeCaseFile(t, dir, "cases.jsonl", `[1,2]`, `[3,4]`)

	cached, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	p.Forget(path)
	fresh, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestParserParseFileMissing(t *testing.T) {
	p := NewParser(1)
	_, err := p.ParseFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestParserParseFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeCaseFile(t, dir, "a.jsonl", `[1,2]`, `[3,2,1]`)
	b := writeCaseFile(t, dir, "b.jsonl", `{"input":[4],"output":0}`)
	missing := filepath.Join(dir, "missing.jsonl")

	p := NewParser(2)
	var results []ParseResult
	for r := range p.ParseFiles([]string{a, b, missing}) {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	require.Len(t, results, 3)
	assert.Len(t, results[0].Cases, 2)
	assert.NoError(t, results[0].Error)
	assert.Len(t, results[1].Cases, 1)
	assert.Error(t, results[2].Error)
}

func TestNewParserClampsConcurrency(t *testing.T) {
	assert.Equal(t, 1, NewParser(0).concurrency)
	assert.Equal(t, 4, NewParser(4).concurrency)
}

func intPtr(v int) *int {
	return &v
}
