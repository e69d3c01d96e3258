package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestCategorizeError_DiskSpace(t *testing.T) {
	err := errors.New("write failed: no space left on device")
	procErr := CategorizeError("/test/file.jpg", err)

	if procErr.Category != ErrorCategoryIO {
		t.Errorf("Expected IO category, got %s", procErr.Category)
	}
	if !strings.Contains(procErr.Suggestion, "disk space") {
		t.Errorf("Expected disk space suggestion, got: %s", procErr.Suggestion)
	}
}

func TestCategorizeError_Permission(t *testing.T) {
	err := errors.New("open /library/file.jpg: permission denied")
	procErr := CategorizeError("/test/file.jpg", err)

	if procErr.Category != ErrorCategoryIO {
		t.Errorf("Expected IO category, got %s", procErr.Category)
	}
}

func TestCategorizeError_Metadata(t *testing.T) {
	err := errors.New("failed to read exif data")
	procErr := CategorizeError("/test/file.jpg", err)

	if procErr.Category != ErrorCategoryMetadata {
		t.Errorf("Expected metadata category, got %s", procErr.Category)
	}
}

func TestCategorizeError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	procErr := CategorizeError("/test/file.jpg", inner)

	if !errors.Is(procErr, inner) {
		t.Error("ProcessError must unwrap to the original error")
	}
}

func TestErrorStats_KeepsLastFive(t *testing.T) {
	stats := NewErrorStats()
	for i := 0; i < 8; i++ {
		stats.Add(CategorizeError("/test/file.jpg", errors.New("permission denied")))
	}

	if stats.Total != 8 {
		t.Errorf("Expected 8 total errors, got %d", stats.Total)
	}
	if len(stats.LastErrors) != 5 {
		t.Errorf("Expected 5 retained errors, got %d", len(stats.LastErrors))
	}
	if stats.ByCategory[ErrorCategoryIO] != 8 {
		t.Errorf("Expected 8 IO errors, got %d", stats.ByCategory[ErrorCategoryIO])
	}
}

func TestErrorStats_GenerateReport(t *testing.T) {
	stats := NewErrorStats()
	stats.Add(CategorizeError("/test/a.jpg", errors.New("no space left on device")))
	stats.Add(CategorizeError("/test/b.jpg", errors.New("something odd")))

	report := stats.GenerateReport()
	if !strings.Contains(report, "2 errors") {
		t.Errorf("Expected error count in report: %s", report)
	}
	if !strings.Contains(report, "/test/a.jpg") || !strings.Contains(report, "/test/b.jpg") {
		t.Errorf("Expected file paths in report: %s", report)
	}
	if !strings.Contains(report, string(ErrorCategoryUnknown)) {
		t.Errorf("Expected unknown category in report: %s", report)
	}
}
