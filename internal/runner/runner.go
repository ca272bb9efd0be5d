package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/penwyp/go-peak-window/internal/core/cache"
	"github.com/penwyp/go-peak-window/internal/core/model"
	"github.com/penwyp/go-peak-window/internal/core/window"
	"github.com/penwyp/go-peak-window/internal/data/parser"
	"github.com/penwyp/go-peak-window/internal/data/scanner"
	"github.com/penwyp/go-peak-window/internal/presentation/formatter"
	"github.com/penwyp/go-peak-window/internal/util"
)

var (
	// ErrNoCases is returned when the configured inputs hold no cases.
	ErrNoCases = errors.New("no cases found")
	// ErrCasesFailed is returned by callers when a report contains failures.
	ErrCasesFailed = errors.New("cases failed")
)

type Config struct {
	// Values are box heights given directly; they form a single case.
	Values []string
	// Files and Dir point at JSONL case files.
	Files []string
	Dir   string

	OutputFormat  string
	CheckSymmetry bool
	Concurrency   int
	Writer        io.Writer
}

type Runner struct {
	config    *Config
	cache     *cache.MemoryCache
	parser    *parser.Parser
	formatter formatter.Formatter
}

func New(config *Config) (*Runner, error) {
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.NumCPU()
	}
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	f, err := formatter.New(config.OutputFormat, config.Writer)
	if err != nil {
		return nil, err
	}

	return &Runner{
		config:    config,
		cache:     cache.NewMemoryCache(),
		parser:    parser.NewParser(config.Concurrency),
		formatter: f,
	}, nil
}

// Run loads, evaluates and prints every case once.
func (r *Runner) Run(ctx context.Context) (*model.Report, error) {
	ctx = context.WithValue(ctx, util.RunIDKey, uuid.NewString())
	logger := runLogger(ctx)

	startTime := time.Now()
	cases, err := r.LoadCases()
	if err != nil {
		return nil, err
	}
	logDebug(logger, "Cases loaded", util.F("count", len(cases)), util.F("duration", time.Since(startTime)))

	results := make([]model.CaseResult, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, r.Evaluate(ctx, c))
	}

	report := model.NewReport(results)
	stats := r.cache.Stats()
	logDebug(logger, "Evaluation finished",
		util.F("cases", report.Total),
		util.F("failed", report.Failed),
		util.F("cache_hits", stats.Hits),
		util.F("cache_misses", stats.Misses),
		util.F("duration", time.Since(startTime)))

	if err := r.formatter.Format(report); err != nil {
		return report, fmt.Errorf("failed to write report: %w", err)
	}
	return report, nil
}

// runLogger returns the global logger tagged with the run id carried by ctx,
// or nil when logging is disabled.
func runLogger(ctx context.Context) util.LoggerInterface {
	logger := util.GetLogger()
	if logger == nil {
		return nil
	}
	return logger.WithContext(ctx)
}

func logDebug(logger util.LoggerInterface, msg string, fields ...util.Field) {
	if logger != nil {
		logger.Debug(msg, fields...)
	}
}

// LoadCases collects cases from values, files and the directory. With no
// input configured the built-in cases are returned.
func (r *Runner) LoadCases() ([]model.Case, error) {
	var cases []model.Case

	if len(r.config.Values) > 0 {
		seq, err := parser.ParseValues(r.config.Values)
		if err != nil {
			return nil, err
		}
		cases = append(cases, model.Case{Name: "args", Input: seq})
	}

	files, err := r.caseFiles()
	if err != nil {
		return nil, err
	}

	if len(files) > 0 {
		byFile := make(map[string][]model.Case, len(files))
		for result := range r.parser.ParseFiles(files) {
			if result.Error != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", result.File, result.Error)
			}
			byFile[result.File] = result.Cases
		}
		// Keep the order files were given in.
		for _, file := range files {
			cases = append(cases, byFile[file]...)
		}
		if len(cases) == 0 {
			return nil, fmt.Errorf("%w in %d case files", ErrNoCases, len(files))
		}
	}

	if len(r.config.Values) == 0 && len(files) == 0 {
		if r.config.Dir != "" {
			return nil, fmt.Errorf("%w under %s", ErrNoCases, r.config.Dir)
		}
		util.LogDebug("No input given, using built-in cases")
		cases = model.DefaultCases()
	}

	return cases, nil
}

func (r *Runner) caseFiles() ([]string, error) {
	files := append([]string(nil), r.config.Files...)
	if r.config.Dir != "" {
		found, err := scanner.NewFileScanner(r.config.Dir).Scan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.config.Dir, err)
		}
		files = append(files, found...)
	}
	return dedupe(files), nil
}

func dedupe(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := files[:0]
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Evaluate scans a case forward and reversed and checks it against its
// expected answer. Repeated sequences are served from the cache. Log lines
// carry the run id found in ctx.
func (r *Runner) Evaluate(ctx context.Context, c model.Case) model.CaseResult {
	logger := runLogger(ctx)
	result := model.CaseResult{
		Name:     c.Name,
		Input:    c.Input,
		Expected: c.Output,
	}

	entry, cached := r.cache.Get(c.Input)
	if !cached {
		state, stats, err := window.Scan(c.Input)
		if err != nil {
			result.Status = model.StatusError
			result.Error = err.Error()
			if logger != nil {
				logger.Warn("Case could not be scanned", util.F("case", c.Name), util.F("error", err))
			}
			return result
		}
		// Reversal never changes validity, so the error is already handled.
		reverse, _ := window.LargestSinglePeakWindow(model.Reverse(c.Input))

		entry = cache.Entry{Forward: state.RunningMaximum, Reverse: reverse, Steps: stats.TotalSteps()}
		r.cache.Set(c.Input, entry)
	}

	result.Forward = entry.Forward
	result.Reverse = entry.Reverse
	result.Steps = entry.Steps
	result.Cached = cached
	result.Symmetric = entry.Forward == entry.Reverse
	result.Status = classify(c, result, r.config.CheckSymmetry)

	if result.Status == model.StatusFailed && logger != nil {
		logger.Info("Case failed",
			util.F("case", c.Name),
			util.F("expected", util.FormatOptionalInt(c.Output)),
			util.F("forward", result.Forward),
			util.F("reverse", result.Reverse))
	}
	return result
}

func classify(c model.Case, result model.CaseResult, checkSymmetry bool) model.CaseStatus {
	if c.Checked() {
		if result.Forward == *c.Output && result.Reverse == *c.Output {
			return model.StatusPassed
		}
		return model.StatusFailed
	}
	if checkSymmetry {
		if result.Symmetric {
			return model.StatusPassed
		}
		return model.StatusFailed
	}
	return model.StatusUnchecked
}

// watchPaths returns the paths a watcher should observe
func (r *Runner) watchPaths() []string {
	paths := append([]string(nil), r.config.Files...)
	if r.config.Dir != "" {
		paths = append(paths, r.config.Dir)
	}
	sort.Strings(paths)
	return dedupe(paths)
}
