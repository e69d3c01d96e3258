package internal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// auditHeader is written once when the log file is first created. The log
// is append-only across runs; it is never rewritten or truncated.
var auditHeader = []string{
	"Source", "Destination", "Device", "Category",
	"Date", "Hash", "Duplicate", "TimestampFixed",
}

const auditDateLayout = "2006-01-02 15:04:05"

// AuditRecord is one row of the audit log: the durable trace of a single
// file placement.
type AuditRecord struct {
	Source         string
	Destination    string
	Device         string
	Category       string
	Date           time.Time
	Hash           string
	Duplicate      bool
	TimestampFixed bool
}

// AuditLog appends placement records to a CSV file.
type AuditLog struct {
	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
}

// OpenAuditLog opens the audit log for appending, creating it with a
// header row if it does not exist yet.
func OpenAuditLog(path string) (*AuditLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	log := &AuditLog{f: f, w: csv.NewWriter(f)}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := log.w.Write(auditHeader); err != nil {
			f.Close()
			return nil, err
		}
		log.w.Flush()
		if err := log.w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return log, nil
}

// Append writes one record and flushes it to disk before returning.
func (l *AuditLog) Append(rec AuditRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := []string{
		rec.Source,
		rec.Destination,
		rec.Device,
		rec.Category,
		rec.Date.Format(auditDateLayout),
		rec.Hash,
		strconv.FormatBool(rec.Duplicate),
		yesNo(rec.TimestampFixed),
	}
	if err := l.w.Write(row); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("failed to flush audit record: %w", err)
	}
	return l.f.Sync()
}

func (l *AuditLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Flush()
	return l.f.Close()
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// ReadAuditLog parses every record of an existing audit log. Used by the
// stats command; rows with a malformed date keep a zero Date rather than
// failing the whole read.
func ReadAuditLog(path string) ([]AuditRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(auditHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse audit log: %w", err)
	}

	var records []AuditRecord
	for i, row := range rows {
		if i == 0 && row[0] == auditHeader[0] {
			continue
		}
		date, _ := time.ParseInLocation(auditDateLayout, row[4], time.Local)
		dup, _ := strconv.ParseBool(row[6])
		records = append(records, AuditRecord{
			Source:         row[0],
			Destination:    row[1],
			Device:         row[2],
			Category:       row[3],
			Date:           date,
			Hash:           row[5],
			Duplicate:      dup,
			TimestampFixed: strings.EqualFold(row[7], "YES"),
		})
	}
	return records, nil
}
