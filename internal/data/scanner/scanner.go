package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-peak-window/internal/util"
)

// CaseFileExt is the extension of case files
const CaseFileExt = ".jsonl"

// FileScanner finds case files under a directory
type FileScanner struct {
	baseDir string
	ext     string
}

func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir: baseDir,
		ext:     CaseFileExt,
	}
}

// IsCaseFile reports whether path has the case file extension, ignoring case
func IsCaseFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CaseFileExt)
}

// Scan walks the directory and returns sorted case file paths.
// Unreadable entries are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip entry (error): %s - %v", path, err))
			return nil
		}

		if d.IsDir() {
			dirCount++
			return nil
		}

		if strings.EqualFold(filepath.Ext(path), s.ext) {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	util.LogDebug("Case file scan completed",
		util.F("dir", s.baseDir),
		util.F("duration", time.Since(start)),
		util.F("directories", dirCount),
		util.F("files", len(files)))

	return files, err
}
