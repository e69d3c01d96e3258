package internal

import (
	"encoding/binary"
	"os"
	"strings"
	"time"
	"unicode/utf16"

	exiftool "github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
)

// Tags holds the embedded metadata fields the pipeline cares about.
// Any field may be zero when the file does not carry it.
type Tags struct {
	CaptureDate  time.Time
	Make         string
	Model        string
	Description  string
	DocumentName string
	WindowsName  string // Windows XP title tag, stored as UTF-16
}

// TagReader extracts Tags from a media file. Implementations must treat
// malformed or missing metadata as empty fields, not as errors the caller
// has to distinguish.
type TagReader interface {
	ReadTags(path string) (Tags, error)
	Close() error
}

// NewTagReader returns the exiftool-backed reader when requested and the
// native goexif reader otherwise.
func NewTagReader(useExifTool bool) (TagReader, error) {
	if useExifTool {
		return newExifToolReader()
	}
	return &goexifReader{}, nil
}

const exifTimeLayout = "2006:01:02 15:04:05"

// Tag names goexif resolves through its field table. DocumentName is part
// of the TIFF baseline, the XP tags come from Windows Explorer.
const (
	tagDocumentName exif.FieldName = "DocumentName"
	tagXPTitle      exif.FieldName = "XPTitle"
)

// goexifReader decodes EXIF natively, no external binary needed.
type goexifReader struct{}

func (r *goexifReader) ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return Tags{}, err
	}

	var tags Tags

	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime} {
		if s, ok := stringField(x, field); ok {
			if t, err := time.Parse(exifTimeLayout, s); err == nil {
				tags.CaptureDate = t
				break
			}
		}
	}

	if s, ok := stringField(x, exif.Make); ok {
		tags.Make = s
	}
	if s, ok := stringField(x, exif.Model); ok {
		tags.Model = s
	}
	if s, ok := stringField(x, exif.ImageDescription); ok {
		tags.Description = s
	}
	if s, ok := stringField(x, tagDocumentName); ok {
		tags.DocumentName = s
	}
	if tag, err := x.Get(tagXPTitle); err == nil {
		tags.WindowsName = decodeUTF16(tag.Val)
	}

	return tags, nil
}

func (r *goexifReader) Close() error { return nil }

func stringField(x *exif.Exif, name exif.FieldName) (string, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return "", false
	}
	s, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// decodeUTF16 turns the raw little-endian bytes of an XP tag into a string.
func decodeUTF16(b []byte) string {
	if len(b) < 2 {
		return ""
	}
	u := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u = append(u, binary.LittleEndian.Uint16(b[i:]))
	}
	return strings.TrimRight(string(utf16.Decode(u)), "\x00")
}

// exifToolReader reads tags through a long-running exiftool process.
// Slower to start but understands far more formats than the native decoder.
type exifToolReader struct {
	et *exiftool.Exiftool
}

func newExifToolReader() (*exifToolReader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, err
	}
	return &exifToolReader{et: et}, nil
}

func (r *exifToolReader) ReadTags(path string) (Tags, error) {
	metas := r.et.ExtractMetadata(path)
	if len(metas) == 0 {
		return Tags{}, nil
	}
	meta := metas[0]
	if meta.Err != nil {
		return Tags{}, meta.Err
	}

	var tags Tags
	for _, field := range []string{"DateTimeOriginal", "CreateDate", "ModifyDate"} {
		if s, err := meta.GetString(field); err == nil {
			if t, err := time.Parse(exifTimeLayout, s); err == nil {
				tags.CaptureDate = t
				break
			}
		}
	}
	if s, err := meta.GetString("Make"); err == nil {
		tags.Make = s
	}
	if s, err := meta.GetString("Model"); err == nil {
		tags.Model = s
	}
	if s, err := meta.GetString("ImageDescription"); err == nil {
		tags.Description = s
	}
	if s, err := meta.GetString("DocumentName"); err == nil {
		tags.DocumentName = s
	}
	if s, err := meta.GetString("XPTitle"); err == nil {
		tags.WindowsName = s
	}

	return tags, nil
}

func (r *exifToolReader) Close() error {
	return r.et.Close()
}
