// Package detector handles program container detection.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Container is the file format that holds a program image.
type Container string

// Supported containers.
const (
	Raw      Container = "raw"
	Zip      Container = "zip"
	SevenZip Container = "7z"
	Gzip     Container = "gzip"
)

func (c Container) String() string {
	return string(c)
}

var (
	zipMagic      = []byte{'P', 'K', 0x03, 0x04}
	sevenZipMagic = []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}
	gzipMagic     = []byte{0x1F, 0x8B}
)

// ProgramExtensions contains the file extensions of raw program images.
var ProgramExtensions = newExtensionSet(".ch8", ".c8", ".rom")

// Detector handles container detection from file extensions and content.
type Detector struct {
	logger *log.Logger
}

// New creates a new container detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the container of a file from its name and its first bytes.
// A known archive extension takes precedence, program extensions are always
// treated as raw images, other files are identified by their magic bytes.
func (d *Detector) Detect(filename string, header []byte) Container {
	container := detectFromFile(filename)
	if container == "" {
		container = detectFromHeader(header)
	}
	if d.logger != nil {
		d.logger.Debug("Detected program container",
			log.Stringer("container", container),
			log.String("file", filename))
	}
	return container
}

// IsProgramFile returns whether the file name has a raw program extension.
func IsProgramFile(filename string) bool {
	return ProgramExtensions.Contains(strings.ToLower(filepath.Ext(filename)))
}

// detectFromFile determines the container based on the file extension.
func detectFromFile(filename string) Container {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".zip":
		return Zip
	case ext == ".7z":
		return SevenZip
	case ext == ".gz":
		return Gzip
	case ProgramExtensions.Contains(ext):
		return Raw
	default:
		return ""
	}
}

func detectFromHeader(header []byte) Container {
	switch {
	case bytes.HasPrefix(header, zipMagic):
		return Zip
	case bytes.HasPrefix(header, sevenZipMagic):
		return SevenZip
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	default:
		return Raw
	}
}

func newExtensionSet(extensions ...string) set.Set[string] {
	s := set.New[string]()
	for _, ext := range extensions {
		s.Add(ext)
	}
	return s
}
