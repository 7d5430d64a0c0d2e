package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions is the upload allow-list for course attachments.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"mp4":  {},
	"avi":  {},
	"mov":  {},
	"wmv":  {},
	"txt":  {},
	"docx": {},
	"pptx": {},
}

const storedNameLayout = "20060102_150405_"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Extension returns the lower-cased extension without the dot, or "" when there is none.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// AllowedFile reports whether name carries an allow-listed extension.
func AllowedFile(name string) bool {
	_, ok := AllowedExtensions[Extension(name)]
	return ok
}

// SanitizeFilename reduces a client supplied name to a flat ASCII name that is
// safe to join onto the upload directory. It may return "".
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	name = b.String()
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// StoredName prefixes a sanitized name with the upload timestamp.
func StoredName(t time.Time, sanitized string) string {
	return t.Format(storedNameLayout) + sanitized
}

// withSuffix inserts _n before the extension: a.pdf -> a_1.pdf
func withSuffix(name string, n int) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
}

// FormatFileSize renders a byte count as B, KB, MB or GB with one decimal.
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	return fmt.Sprintf("%.1f%s", value, units[i])
}
