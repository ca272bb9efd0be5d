package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-peak-window/internal/core/model"
	"github.com/penwyp/go-peak-window/internal/util"
)

// ErrBlankLine marks a line that carries no case (empty or comment).
var ErrBlankLine = errors.New("blank line")

// Parser reads case files.
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string][]model.Case
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File  string
	Cases []model.Case
	Error error
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string][]model.Case),
	}
}

// ParseLine decodes one case. It accepts a JSON object
// {"name": ..., "input": [...], "output": n}, a bare JSON array, or
// integers separated by whitespace and/or commas.
func ParseLine(line []byte) (model.Case, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] == '#' {
		return model.Case{}, ErrBlankLine
	}

	var c model.Case
	switch line[0] {
	case '{':
		if err := sonic.Unmarshal(line, &c); err != nil {
			return model.Case{}, fmt.Errorf("decode case object: %w", err)
		}
	case '[':
		if err := sonic.Unmarshal(line, &c.Input); err != nil {
			return model.Case{}, fmt.Errorf("decode sequence array: %w", err)
		}
	default:
		seq, err := ParseValues(strings.FieldsFunc(string(line), isSeparator))
		if err != nil {
			return model.Case{}, err
		}
		c.Input = seq
	}

	if err := c.Validate(); err != nil {
		return model.Case{}, err
	}
	return c, nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t'
}

// ParseValues converts textual integers into a sequence. Each value may
// itself hold several comma separated integers.
func ParseValues(values []string) ([]int, error) {
	seq := make([]int, 0, len(values))
	for _, v := range values {
		for _, field := range strings.FieldsFunc(v, isSeparator) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid box height %q: %w", field, err)
			}
			seq = append(seq, n)
		}
	}
	return seq, nil
}

// ParseFile parses a case file, one case per line. Lines that fail to
// decode are skipped.
func (p *Parser) ParseFile(path string) ([]model.Case, error) {
	p.mu.Lock()
	if cached, ok := p.cache[path]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	util.LogDebug("Start parsing case file", util.F("file", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cases []model.Case
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	base := filepath.Base(path)
	lineCount := 0
	for scanner.Scan() {
		lineCount++
		c, err := ParseLine(scanner.Bytes())
		if err != nil {
			if !errors.Is(err, ErrBlankLine) {
				util.LogDebug(fmt.Sprintf("Skip invalid case line %s:%d - %v", path, lineCount, err))
			}
			continue
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("%s:%d", base, lineCount)
		}
		cases = append(cases, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p.mu.Lock()
	p.cache[path] = cases
	p.mu.Unlock()

	return cases, nil
}

// Forget drops a file from the parse cache so the next ParseFile rereads it.
func (p *Parser) Forget(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cache, path)
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			cases, err := p.ParseFile(f)
			if err != nil {
				util.LogDebug(fmt.Sprintf("Case file parsing failed: %s - %v", f, err))
			}

			results <- ParseResult{
				File:  f,
				Cases: cases,
				Error: err,
			}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebug(fmt.Sprintf("Parsed %d case files in %v", len(files), time.Since(start)))
	}()

	return results
}
