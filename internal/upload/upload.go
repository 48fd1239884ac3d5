package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Sentinel errors for study material uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrEmptyFile           = errors.New("file is empty")
)

// DefaultMaxBytes is the upload size limit.
const DefaultMaxBytes = 10 * 1024 * 1024

// allowed maps an extension to the detected MIME types accepted for it.
// Legacy Word files are often detected only as generic OLE storage, and
// docx as a plain zip when the archive is unusual.
var allowed = map[string][]string{
	".pdf":  {"application/pdf"},
	".txt":  {"text/plain"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
}

// File describes an accepted upload.
type File struct {
	Path     string
	Name     string
	Size     int64
	MIMEType string
}

// Inspect checks path against the accepted types and maxBytes and detects
// its MIME type from content.
func Inspect(path string, maxBytes int64) (File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	accepted, ok := allowed[ext]
	if !ok {
		return File{}, fmt.Errorf("%w: %q (allowed: %s)",
			ErrUnsupportedFileType, ext, strings.Join(AllowedExtensions(), ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat upload: %w", err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFileType, path)
	}
	if info.Size() == 0 {
		return File{}, ErrEmptyFile
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return File{}, fmt.Errorf("%w: %s (max: %s)", ErrFileTooLarge, FormatSize(info.Size()), FormatSize(maxBytes))
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, fmt.Errorf("detect type: %w", err)
	}
	if !matches(mt, accepted) {
		return File{}, fmt.Errorf("%w: %s content is %s", ErrUnsupportedFileType, ext, mt.String())
	}

	return File{
		Path:     path,
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: mt.String(),
	}, nil
}

// matches reports whether mt or one of its ancestors is in accepted.
func matches(mt *mimetype.MIME, accepted []string) bool {
	for m := mt; m != nil; m = m.Parent() {
		for _, a := range accepted {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

// AllowedExtensions returns the accepted extensions, sorted.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowed))
	for e := range allowed {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// FormatSize renders n bytes as B, KB, MB or GB with up to two decimals.
func FormatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d Bytes", n)
	}
	units := []string{"KB", "MB", "GB"}
	v := float64(n) / 1024
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	return s + " " + units[i]
}
