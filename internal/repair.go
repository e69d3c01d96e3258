package internal

import (
	"fmt"
	"os/exec"
	"time"
)

// Repairer rewrites a file's embedded capture-date tags and filesystem
// modify time to a resolved date. Availability is probed once so the
// pipeline can skip the step entirely when the tool is missing.
type Repairer interface {
	Available() bool
	Repair(path string, date time.Time) error
}

// ExifToolRepairer shells out to the exiftool binary. AllDates is the
// exiftool shortcut covering DateTimeOriginal, CreateDate and ModifyDate.
type ExifToolRepairer struct {
	available bool
}

// NewExifToolRepairer probes for the exiftool binary once. When the probe
// fails every Repair call becomes a no-op error.
func NewExifToolRepairer() *ExifToolRepairer {
	err := exec.Command("exiftool", "-ver").Run()
	return &ExifToolRepairer{available: err == nil}
}

func (r *ExifToolRepairer) Available() bool {
	return r.available
}

func (r *ExifToolRepairer) Repair(path string, date time.Time) error {
	if !r.available {
		return fmt.Errorf("exiftool is not installed")
	}

	stamp := date.Format("2006:01:02 15:04:05")
	cmd := exec.Command("exiftool",
		"-AllDates="+stamp,
		"-FileModifyDate="+stamp,
		"-overwrite_original",
		path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("exiftool failed: %w: %s", err, out)
	}
	return nil
}

// DisabledRepairer is used when timestamp repair is switched off; it never
// attempts an invocation.
type DisabledRepairer struct{}

func (DisabledRepairer) Available() bool { return false }

func (DisabledRepairer) Repair(string, time.Time) error {
	return fmt.Errorf("timestamp repair is disabled")
}
