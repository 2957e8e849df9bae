package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/memory"
)

var errNoProgramInArchive = errors.New("archive does not contain a file")

// entry is a file inside an archive.
type entry struct {
	name string
	open func() (io.ReadCloser, error)
}

func extractZip(data []byte) (string, []byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("opening zip archive: %w", err)
	}

	var entries []entry
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, entry{name: f.Name, open: f.Open})
	}
	return extractEntry(entries)
}

func extractSevenZip(data []byte) (string, []byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("opening 7z archive: %w", err)
	}

	var entries []entry
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, entry{name: f.Name, open: f.Open})
	}
	return extractEntry(entries)
}

func extractGzip(data []byte, name string) (string, []byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer func() { _ = r.Close() }()

	content, err := readLimited(r)
	if err != nil {
		return "", nil, err
	}

	if r.Name != "" {
		name = r.Name
	} else {
		name = strings.TrimSuffix(name, ".gz")
	}
	return name, content, nil
}

// extractEntry reads the first entry with a program extension, or the first
// entry if none has one.
func extractEntry(entries []entry) (string, []byte, error) {
	if len(entries) == 0 {
		return "", nil, errNoProgramInArchive
	}

	selected := entries[0]
	for _, e := range entries {
		if detector.IsProgramFile(e.name) {
			selected = e
			break
		}
	}

	rc, err := selected.open()
	if err != nil {
		return "", nil, fmt.Errorf("opening archive file %s: %w", selected.name, err)
	}
	defer func() { _ = rc.Close() }()

	content, err := readLimited(rc)
	if err != nil {
		return "", nil, fmt.Errorf("reading archive file %s: %w", selected.name, err)
	}
	return selected.name, content, nil
}

// readLimited reads at most one byte more than fits into memory, which is
// enough to detect an oversized program.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, memory.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return data, nil
}
