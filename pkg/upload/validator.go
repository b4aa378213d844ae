// Package upload gates untrusted mesh files before they reach the parser.
//
// Checks run in a fixed order: declared size, file extension, then a
// content sniff. The sniff accepts a file whose detected MIME type is on an
// allow-list, or failing that, whose first bytes look structurally like
// the format its extension claims.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MB is one megabyte in bytes
const MB = 1024 * 1024

// DefaultMaxSizeMB is the size limit used when none is configured
const DefaultMaxSizeMB = 10

const (
	// sniffSize is how much content is handed to MIME detection
	sniffSize = 3072
	// probeSize is how much content the structural probe looks at
	probeSize = 100
	// stlHeaderSize is the binary STL header length
	stlHeaderSize = 80
)

var (
	DefaultExtensions = []string{"stl", "obj"}

	DefaultMIMETypes = []string{
		"application/octet-stream",
		"application/sla",
		"model/stl",
		"model/obj",
		"text/plain",
		"application/vnd.ms-pki.stl",
	}
)

var objLinePattern = regexp.MustCompile(`(?m)^(#|v\s|vt\s|vn\s|f\s|o\s|g\s|mtllib|usemtl)`)

// Validator holds the limits an upload is checked against
type Validator struct {
	MaxSizeMB         int
	AllowedExtensions []string
	AllowedMIMETypes  []string
}

// NewValidator creates a validator with the given size limit and allowed
// extensions. Zero or empty values fall back to the defaults.
func NewValidator(maxSizeMB int, extensions ...string) *Validator {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			normalized = append(normalized, ext)
		}
	}

	return &Validator{
		MaxSizeMB:         maxSizeMB,
		AllowedExtensions: normalized,
		AllowedMIMETypes:  slices.Clone(DefaultMIMETypes),
	}
}

// Validate checks an upload given its original file name, declared size
// and content. It returns a *Rejection describing the first failed check.
func (v *Validator) Validate(name string, size int64, content io.Reader) error {
	if err := v.CheckSize(size); err != nil {
		return err
	}

	ext, err := v.CheckExtension(name)
	if err != nil {
		return err
	}

	head, err := io.ReadAll(io.LimitReader(content, sniffSize))
	if err != nil {
		return fmt.Errorf("failed to read upload content: %w", err)
	}
	return v.CheckContent(ext, head)
}

// ValidateFile runs Validate against a file on disk
func (v *Validator) ValidateFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	return v.Validate(filepath.Base(path), info.Size(), file)
}

// CheckSize rejects sizes above the configured limit
func (v *Validator) CheckSize(size int64) error {
	if size > int64(v.MaxSizeMB)*MB {
		return &Rejection{
			Reason:  ReasonSize,
			Message: fmt.Sprintf("file size exceeds %d MB limit", v.MaxSizeMB),
		}
	}
	return nil
}

// CheckExtension returns the lower-cased extension of name if allowed
func (v *Validator) CheckExtension(name string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" || !slices.Contains(v.AllowedExtensions, ext) {
		return ext, &Rejection{
			Reason:  ReasonExtension,
			Message: "invalid file type. Allowed: " + strings.Join(v.AllowedExtensions, ", "),
		}
	}
	return ext, nil
}

// CheckContent sniffs the leading bytes of an upload. MIME detection on
// mesh files is unreliable, so a miss falls through to a structural probe.
func (v *Validator) CheckContent(ext string, head []byte) error {
	// empty content sniffs as text/plain, so leave it to the probe
	detected := mimetype.Detect(head)
	if len(head) > 0 {
		for _, allowed := range v.AllowedMIMETypes {
			if detected.Is(allowed) {
				return nil
			}
		}
	}

	if looksLike(ext, head) {
		return nil
	}

	return &Rejection{
		Reason:  ReasonContent,
		Message: "file content does not match expected format",
		MIME:    detected.String(),
	}
}

// looksLike is the structural probe used when MIME detection misses
func looksLike(ext string, head []byte) bool {
	if len(head) > probeSize {
		head = head[:probeSize]
	}

	switch ext {
	case "stl":
		return strings.HasPrefix(string(head), "solid") || len(head) >= stlHeaderSize
	case "obj":
		return objLinePattern.Match(head)
	}
	return false
}

// IsRejection reports whether err is an upload rejection and returns it
func IsRejection(err error) (*Rejection, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
