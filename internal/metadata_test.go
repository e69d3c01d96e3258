package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeUTF16(t *testing.T) {
	testCases := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"ascii", []byte{'F', 0, 'o', 0, 'o', 0}, "Foo"},
		{"trailing nul", []byte{'A', 0, 0, 0}, "A"},
		{"umlaut", []byte{0xFC, 0}, "ü"},
		{"empty", nil, ""},
		{"single byte", []byte{'x'}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decodeUTF16(tc.input); got != tc.expected {
				t.Errorf("decodeUTF16(%v) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestGoexifReader_MalformedFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "not_really.jpg")
	if err := os.WriteFile(path, []byte("this is not a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	reader := &goexifReader{}
	if _, err := reader.ReadTags(path); err == nil {
		t.Error("Expected an error for a file without EXIF data")
	}
}

func TestNewTagReader_Native(t *testing.T) {
	reader, err := NewTagReader(false)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	if _, ok := reader.(*goexifReader); !ok {
		t.Errorf("Expected the native goexif reader, got %T", reader)
	}
}
