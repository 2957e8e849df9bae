// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/memory"
)

// ErrProgramRead is returned when a program file can not be read.
var ErrProgramRead = errors.New("reading program failed")

// maxArchiveSize limits the amount of data read from an archive file.
const maxArchiveSize = 64 << 20

// Program is a loaded program image.
type Program struct {
	Name      string             // file name, or archive member name
	Data      []byte             // program image
	Hash      uint64             // xxhash of the program image
	Container detector.Container // container the image was read from
}

// Loader handles loading program files from disk.
type Loader struct {
	detector *detector.Detector
}

// New creates a new program loader.
func New(det *detector.Detector) *Loader {
	return &Loader{
		detector: det,
	}
}

// Load reads a program image from a raw file or from a zip, 7z or gzip
// archive. Read errors wrap ErrProgramRead, images that do not fit into
// memory wrap memory.ErrProgramTooLarge.
func (l *Loader) Load(path string) (Program, error) {
	data, err := readFile(path)
	if err != nil {
		return Program{}, err
	}

	container := l.detector.Detect(path, data)
	program := Program{
		Name:      filepath.Base(path),
		Data:      data,
		Container: container,
	}

	switch container {
	case detector.Zip:
		program.Name, program.Data, err = extractZip(data)
	case detector.SevenZip:
		program.Name, program.Data, err = extractSevenZip(data)
	case detector.Gzip:
		program.Name, program.Data, err = extractGzip(data, program.Name)
	}
	if err != nil {
		return Program{}, fmt.Errorf("%w: extracting %s archive %s: %w", ErrProgramRead, container, path, err)
	}

	if len(program.Data) > memory.MaxProgramSize {
		return Program{}, fmt.Errorf("%w: %d > %d", memory.ErrProgramTooLarge, len(program.Data), memory.MaxProgramSize)
	}

	program.Hash = xxhash.Sum64(program.Data)
	return program, nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file %s: %w", ErrProgramRead, path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading file %s: %w", ErrProgramRead, path, err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("%w: file %s exceeds %d bytes", ErrProgramRead, path, maxArchiveSize)
	}
	return data, nil
}
