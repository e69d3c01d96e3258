package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeleteJunkFiles(t *testing.T) {
	tempDir := t.TempDir()
	junkNames := []string{".ds_store", "desktop.ini", "thumbs.db"}

	junk := []string{
		"Desktop.ini",         // exact match, case-insensitive
		".DS_Store",           //
		"Thumbs.db",           //
		"thumbs.db:encrypted", // prefix match
		"clip0001.THM",        // thumbnail sidecar suffix
	}
	keep := []string{"photo.jpg", "notes.txt", "thumbnails.txt"}

	sub := filepath.Join(tempDir, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range junk {
		touch(t, filepath.Join(sub, name))
	}
	for _, name := range keep {
		touch(t, filepath.Join(tempDir, name))
	}

	deleted := DeleteJunkFiles(tempDir, junkNames)
	if deleted != len(junk) {
		t.Errorf("Expected %d deletions, got %d", len(junk), deleted)
	}
	for _, name := range junk {
		if _, err := os.Stat(filepath.Join(sub, name)); !os.IsNotExist(err) {
			t.Errorf("Junk file survived: %s", name)
		}
	}
	for _, name := range keep {
		if _, err := os.Stat(filepath.Join(tempDir, name)); err != nil {
			t.Errorf("Non-junk file deleted: %s", name)
		}
	}
}

func TestMoveLeftovers(t *testing.T) {
	tempDir := t.TempDir()
	sourceDir := filepath.Join(tempDir, "source")
	outputDir := filepath.Join(tempDir, "output")

	nested := filepath.Join(sourceDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(sourceDir, "report.pdf"))
	touch(t, filepath.Join(nested, "archive.zip"))
	// Same basename in two places: the second lands on the _DUP suffix.
	touch(t, filepath.Join(nested, "report.pdf"))

	moved, err := MoveLeftovers(sourceDir, outputDir)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 3 {
		t.Errorf("Expected 3 moves, got %d", moved)
	}

	for _, name := range []string{"report.pdf", "report_DUP.pdf", "archive.zip"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("Expected %s in output: %v", name, err)
		}
	}
}

func TestRemoveEmptyDirs(t *testing.T) {
	tempDir := t.TempDir()

	// A chain of empty directories, and one that must survive.
	empty := filepath.Join(tempDir, "a", "b", "c")
	if err := os.MkdirAll(empty, 0755); err != nil {
		t.Fatal(err)
	}
	occupied := filepath.Join(tempDir, "keep")
	if err := os.MkdirAll(occupied, 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(occupied, "file.txt"))

	removed := RemoveEmptyDirs(tempDir)
	if removed != 3 {
		t.Errorf("Expected 3 removals, got %d", removed)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "a")); !os.IsNotExist(err) {
		t.Error("Empty directory chain survived")
	}
	if _, err := os.Stat(occupied); err != nil {
		t.Error("Occupied directory was removed")
	}
	if _, err := os.Stat(tempDir); err != nil {
		t.Error("Root directory must never be removed")
	}
}
