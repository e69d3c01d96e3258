package internal

import (
	"fmt"
	"strings"
)

// ErrorCategory represents the type of error encountered while placing a file
type ErrorCategory string

const (
	ErrorCategoryIO       ErrorCategory = "io_error"       // File system, permissions, disk space
	ErrorCategoryHash     ErrorCategory = "hash_error"     // Content could not be digested
	ErrorCategoryMetadata ErrorCategory = "metadata_error" // EXIF/metadata extraction failed
	ErrorCategoryUnknown  ErrorCategory = "unknown_error"  // Unexpected errors
)

// ProcessError is a categorized error for a single file. The pipeline never
// aborts on one; it is collected, reported, and the run moves on.
type ProcessError struct {
	FilePath    string
	Category    ErrorCategory
	OriginalErr error
	Suggestion  string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.FilePath, e.OriginalErr)
}

func (e *ProcessError) Unwrap() error {
	return e.OriginalErr
}

// CategorizeError analyzes an error and returns a ProcessError with a
// category and a user-facing suggestion.
func CategorizeError(filePath string, err error) *ProcessError {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	procErr := &ProcessError{
		FilePath:    filePath,
		OriginalErr: err,
	}

	switch {
	case strings.Contains(errStr, "no space left"):
		procErr.Category = ErrorCategoryIO
		procErr.Suggestion = "Free up disk space on the output drive and re-run the sort"

	case strings.Contains(errStr, "permission denied"):
		procErr.Category = ErrorCategoryIO
		procErr.Suggestion = "Check permissions on both source and output directories"

	case strings.Contains(errStr, "no such file"):
		procErr.Category = ErrorCategoryIO
		procErr.Suggestion = "Source file disappeared mid-run - check if an external drive disconnected"

	case strings.Contains(errStr, "cross-device"):
		procErr.Category = ErrorCategoryIO
		procErr.Suggestion = "Source and output are on different filesystems - the fallback copy also failed"

	case strings.Contains(errStr, "hash"):
		procErr.Category = ErrorCategoryHash
		procErr.Suggestion = "File could not be read for hashing - verify source integrity"

	case strings.Contains(errStr, "exif") || strings.Contains(errStr, "metadata"):
		procErr.Category = ErrorCategoryMetadata
		procErr.Suggestion = "Metadata could not be read - the file falls back to filename/mtime dating"

	default:
		procErr.Category = ErrorCategoryUnknown
		procErr.Suggestion = "Unexpected error - check the audit log and re-run"
	}

	return procErr
}

// ErrorStats aggregates per-file errors over a run for the end-of-run report.
type ErrorStats struct {
	Total      int
	ByCategory map[ErrorCategory]int
	LastErrors []*ProcessError // Last 5 errors for quick diagnosis
}

func NewErrorStats() *ErrorStats {
	return &ErrorStats{
		ByCategory: make(map[ErrorCategory]int),
		LastErrors: make([]*ProcessError, 0, 5),
	}
}

func (s *ErrorStats) Add(err *ProcessError) {
	s.Total++
	s.ByCategory[err.Category]++

	if len(s.LastErrors) >= 5 {
		s.LastErrors = s.LastErrors[1:]
	}
	s.LastErrors = append(s.LastErrors, err)
}

// GenerateReport creates a human-readable error report for the operator.
func (s *ErrorStats) GenerateReport() string {
	var report strings.Builder

	report.WriteString(fmt.Sprintf("\nSort finished with %d errors:\n\n", s.Total))

	for cat, count := range s.ByCategory {
		report.WriteString(fmt.Sprintf("  • %s: %d\n", cat, count))
	}

	report.WriteString("\nRecent errors:\n")
	for i, err := range s.LastErrors {
		report.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, err.FilePath))
		report.WriteString(fmt.Sprintf("   Category: %s\n", err.Category))
		report.WriteString(fmt.Sprintf("   Error: %v\n", err.OriginalErr))
		if err.Suggestion != "" {
			report.WriteString(fmt.Sprintf("   Suggestion: %s\n", err.Suggestion))
		}
	}

	return report.String()
}
