package fixtures

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-peak-window/internal/core/model"
)

// CaseGenerator writes JSONL case files for tests
type CaseGenerator struct {
	baseDir string
}

// NewCaseGenerator creates a generator rooted at baseDir
func NewCaseGenerator(baseDir string) *CaseGenerator {
	return &CaseGenerator{baseDir: baseDir}
}

// GetBaseDir returns the directory files are written to
func (g *CaseGenerator) GetBaseDir() string {
	return g.baseDir
}

// ShapeCases returns cases whose answer follows from their shape: monotonic,
// single peak and constant rows all span their full length. n must be at
// least 2; a single box scans to 0.
func ShapeCases(n int) []model.Case {
	increasing := make([]int, n)
	decreasing := make([]int, n)
	constant := make([]int, n)
	peak := make([]int, n)
	for i := 0; i < n; i++ {
		increasing[i] = i
		decreasing[i] = n - i
		constant[i] = 7
		peak[i] = min(i, n-1-i)
	}
	return []model.Case{
		model.NewCase(fmt.Sprintf("increasing-%d", n), increasing, n),
		model.NewCase(fmt.Sprintf("decreasing-%d", n), decreasing, n),
		model.NewCase(fmt.Sprintf("constant-%d", n), constant, n),
		model.NewCase(fmt.Sprintf("single-peak-%d", n), peak, n),
	}
}

// RandomCases returns count unchecked cases of random heights in [0, spread)
func RandomCases(rng *rand.Rand, count, maxLen, spread int) []model.Case {
	cases := make([]model.Case, 0, count)
	for i := 0; i < count; i++ {
		seq := make([]int, 1+rng.Intn(maxLen))
		for j := range seq {
			seq[j] = rng.Intn(spread)
		}
		cases = append(cases, model.Case{Name: fmt.Sprintf("random-%d", i), Input: seq})
	}
	return cases
}

// WriteCases writes cases to filename under the base directory, one JSON
// object per line, and returns the full path.
func (g *CaseGenerator) WriteCases(filename string, cases []model.Case) (string, error) {
	path := filepath.Join(g.baseDir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, c := range cases {
		data, err := sonic.Marshal(c)
		if err != nil {
			return "", err
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// CreateEmptyFile creates a case file with no cases
func (g *CaseGenerator) CreateEmptyFile(filename string) (string, error) {
	return g.WriteCases(filename, nil)
}
