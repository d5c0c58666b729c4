package export

import (
	"archive/zip"
	"bytes"
	"sort"
	"strings"
	"time"
)

// maxBaseNameLen caps the sanitized part of a generated filename.
const maxBaseNameLen = 64

// zipArtifacts packages encoded files into a single archive. Entries are
// written in sorted order with a fixed modification time so identical inputs
// produce identical archives.
func zipArtifacts(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fixedTime := time.Unix(0, 0).UTC()

	for _, name := range names {
		h := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: fixedTime,
		}
		w, err := zw.CreateHeader(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename derives a safe filename from a workout's display name: forbidden
// filesystem characters are stripped, whitespace collapses to single
// underscores, and the base is length-capped.
func Filename(displayName, ext string) string {
	var b strings.Builder
	for _, r := range displayName {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			// dropped
		case r < 0x20:
			// control characters dropped
		default:
			b.WriteRune(r)
		}
	}
	base := strings.Join(strings.Fields(b.String()), "_")
	if base == "" {
		base = "workout"
	}
	if len(base) > maxBaseNameLen {
		runes := []rune(base)
		if len(runes) > maxBaseNameLen {
			runes = runes[:maxBaseNameLen]
		}
		base = string(runes)
	}
	return base + "." + ext
}
