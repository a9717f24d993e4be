package pipeline

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"time"
)

var archiveModTime = time.Unix(0, 0).UTC()

// FileNames lists the bundle artifacts in name order.
func (r *BytesResult) FileNames() []string {
	names := make([]string, 0, len(r.Files))
	for name := range r.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Archive packs the bundle artifacts into a zip. Entries follow FileNames
// and carry the Unix epoch as their modification time, so one analysis
// always packs to the same bytes.
func (r *BytesResult) Archive() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range r.FileNames() {
		h := &zip.FileHeader{Name: name, Method: zip.Deflate}
		h.SetModTime(archiveModTime)
		w, err := zw.CreateHeader(h)
		if err != nil {
			return nil, fmt.Errorf("add %s to archive: %w", name, err)
		}
		if _, err := w.Write(r.Files[name]); err != nil {
			return nil, fmt.Errorf("write %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
