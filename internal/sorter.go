package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SortStats tracks what a run did, for the end-of-run summary.
type SortStats struct {
	Placed          int
	Duplicates      int
	TimestampsFixed int
	Errors          int
}

// Sorter is the placement engine. It owns the run-scoped seen-hash index;
// nothing here is package-level state, so two Sorters never interfere.
//
// Processing is single-threaded by design: the seen-hash index and the
// on-disk collision checks assume exactly one file in flight.
type Sorter struct {
	cfg    *Config
	tags   TagReader
	repair Repairer
	log    *AuditLog

	// seenHashes maps a content digest to the first path it was placed
	// at. Grows monotonically over the run; first seen wins.
	seenHashes map[string]string

	stats  SortStats
	DryRun bool
}

func NewSorter(cfg *Config, tags TagReader, repair Repairer, log *AuditLog) *Sorter {
	return &Sorter{
		cfg:        cfg,
		tags:       tags,
		repair:     repair,
		log:        log,
		seenHashes: make(map[string]string),
	}
}

// ProcessFile runs the full pipeline for one media file: resolve capture
// identity, detect category, resolve name, hash, place, repair timestamp,
// audit. Non-media files are skipped silently so the watcher can feed
// anything it sees.
func (s *Sorter) ProcessFile(src string) error {
	kind := Classify(src, s.cfg)
	if kind == KindOther {
		return nil
	}

	capture, err := ResolveCapture(src, kind, s.tags)
	if err != nil {
		return fmt.Errorf("failed to resolve date for %s: %w", src, err)
	}

	category := DetectCategory(src, filepath.Dir(src), s.cfg.Keywords)
	name := ResolveName(src, kind, s.tags)

	hash, err := FileHash(src)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", src, err)
	}
	_, duplicate := s.seenHashes[hash]

	if s.DryRun {
		dest := filepath.Join(s.cfg.Output, capture.Device, category,
			capture.Date.Format("2006/01/02"), name)
		fmt.Printf("[dry-run] would move %s → %s\n", src, filepath.Clean(dest))
		return nil
	}

	targetDir, err := MakeDatePath(s.cfg.Output, capture.Device, capture.Date, category)
	if err != nil {
		return err
	}
	dest := ResolveCollision(filepath.Join(targetDir, name), duplicate)

	if err := moveFile(src, dest); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", src, dest, err)
	}

	fixed := false
	if s.repair.Available() {
		fixed = s.repair.Repair(dest, capture.Date) == nil
	}

	rec := AuditRecord{
		Source:         src,
		Destination:    dest,
		Device:         capture.Device,
		Category:       category,
		Date:           capture.Date,
		Hash:           hash,
		Duplicate:      duplicate,
		TimestampFixed: fixed,
	}
	if err := s.log.Append(rec); err != nil {
		return err
	}

	// Recorded only after a fully completed placement, so an interrupted
	// run never leaves a dangling index entry.
	s.seenHashes[hash] = dest

	s.stats.Placed++
	if duplicate {
		s.stats.Duplicates++
	}
	if fixed {
		s.stats.TimestampsFixed++
	}
	return nil
}

// Stats returns the statistics accumulated so far.
func (s *Sorter) Stats() SortStats {
	return s.stats
}

// CountError folds a failed file into the run statistics.
func (s *Sorter) CountError() {
	s.stats.Errors++
}

// moveFile renames src to dest, falling back to copy+remove when the
// rename crosses filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFileAtomic(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFileAtomic copies a file atomically (copy temp → rename)
func copyFileAtomic(src, dest string) error {
	tmp := dest + ".tmp"
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dest)
}
