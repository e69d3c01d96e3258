package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDateFromFilename(t *testing.T) {
	testCases := []struct {
		filename   string
		expected   string
		shouldFail bool
	}{
		// ISO-like with different separators
		{"2023-04-05_beach.jpg", "2023-04-05", false},
		{"photo.2022.12.31.jpg", "2022-12-31", false},
		{"signal_2024_07_01.png", "2024-07-01", false},

		// Day-first takes precedence over compact forms
		{"photo-05-04-2023.png", "2023-04-05", false},
		{"scan_31.12.2021.tiff", "2021-12-31", false},

		// Compact forms
		{"IMG_20230405_101112.jpg", "2023-04-05", false},
		{"VID_20240229.mp4", "2024-02-29", false},
		{"31122022.jpg", "2022-12-31", false},

		// Camera export convention
		{"IMG-20230101-WA0005.jpg", "2023-01-01", false},

		// Invalid cases
		{"random_filename.jpg", "", true},
		{"IMG_20231301_000000.jpg", "", true}, // month 13
		{"signal_2024_99_99.jpg", "", true},
		{"2023-02-30_photo.jpg", "", true}, // day does not exist
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			result, ok := ParseDateFromFilename(tc.filename)

			if tc.shouldFail {
				if ok {
					t.Errorf("Expected parsing to fail for %s, but got: %s", tc.filename, result.Format("2006-01-02"))
				}
				return
			}

			if !ok {
				t.Errorf("Parsing failed for %s", tc.filename)
				return
			}

			actual := result.Format("2006-01-02")
			if actual != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, actual)
			}
		})
	}
}

func TestParseDateFromFilename_DayMonthOrder(t *testing.T) {
	// 05-04-2023 is ambiguous; the pattern order pins it to day=05 month=04.
	result, ok := ParseDateFromFilename("photo-05-04-2023.png")
	if !ok {
		t.Fatal("expected a date")
	}
	if result.Day() != 5 || result.Month() != time.April || result.Year() != 2023 {
		t.Errorf("Expected 2023-04-05, got %s", result.Format("2006-01-02"))
	}
}

type fakeTagReader struct {
	tags map[string]Tags
	err  error
}

func (r *fakeTagReader) ReadTags(path string) (Tags, error) {
	if r.err != nil {
		return Tags{}, r.err
	}
	return r.tags[path], nil
}

func (r *fakeTagReader) Close() error { return nil }

func TestResolveCapture_TagsWin(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "IMG_20200101_000000.jpg")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	reader := &fakeTagReader{tags: map[string]Tags{
		path: {
			CaptureDate: time.Date(2019, 6, 1, 12, 30, 0, 0, time.Local),
			Make:        "Canon",
			Model:       "EOS 70D",
		},
	}}

	rec, err := ResolveCapture(path, KindImage, reader)
	if err != nil {
		t.Fatal(err)
	}

	// Embedded date beats the 2020 date in the filename.
	if rec.Date.Year() != 2019 {
		t.Errorf("Expected tag date 2019, got %d", rec.Date.Year())
	}
	if rec.Device != "Canon_EOS_70D" {
		t.Errorf("Expected Canon_EOS_70D, got %s", rec.Device)
	}
}

func TestResolveCapture_DeviceSurvivesFilenameFallback(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "IMG_20200101_000000.jpg")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	// Tags carry a device but no date; the date comes from the filename.
	reader := &fakeTagReader{tags: map[string]Tags{
		path: {Make: "Apple", Model: "iPhone 6s"},
	}}

	rec, err := ResolveCapture(path, KindImage, reader)
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.Date.Format("2006-01-02"); got != "2020-01-01" {
		t.Errorf("Expected filename date 2020-01-01, got %s", got)
	}
	if rec.Device != "Apple_iPhone_6s" {
		t.Errorf("Expected Apple_iPhone_6s, got %s", rec.Device)
	}
}

func TestResolveCapture_ModTimeFallback(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "randomname.jpg")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2018, 3, 14, 9, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	reader := &fakeTagReader{err: os.ErrNotExist}

	rec, err := ResolveCapture(path, KindImage, reader)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Date.Equal(mtime) {
		t.Errorf("Expected mtime %s, got %s", mtime, rec.Date)
	}
	if rec.Device != DefaultDevice {
		t.Errorf("Expected default device, got %s", rec.Device)
	}
}

func TestResolveCapture_VideoNeverReadsTags(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "VID_20230405.mp4")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	reader := &fakeTagReader{tags: map[string]Tags{
		path: {Make: "GoPro", Model: "Hero"},
	}}

	rec, err := ResolveCapture(path, KindVideo, reader)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Device != DefaultDevice {
		t.Errorf("Video device detection is out of scope, expected default, got %s", rec.Device)
	}
	if got := rec.Date.Format("2006-01-02"); got != "2023-04-05" {
		t.Errorf("Expected 2023-04-05, got %s", got)
	}
}
