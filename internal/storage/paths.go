package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const dailyDirLayout = "2006-01-02"

// dailyDir returns the directory that holds uploads for the given moment,
// e.g. <root>/2025-08-25. The date is taken in t's location.
func dailyDir(root string, t time.Time) string {
	return filepath.Join(root, t.Format(dailyDirLayout))
}

// storedName builds the on-disk name for an upload: the Unix timestamp in
// seconds, a random token, and the sanitized original name. The token keeps
// two same-named uploads within the same second from overwriting each other.
func storedName(t time.Time, token, originalName string) string {
	return fmt.Sprintf("%d_%s_%s", t.Unix(), token, sanitizeName(originalName))
}

// sanitizeName replaces path separators and NUL bytes with underscores so a
// client-supplied name cannot introduce directory components.
func sanitizeName(name string) string {
	return strings.NewReplacer("/", "_", `\`, "_", "\x00", "_").Replace(name)
}

// joinWithinRoot joins name under dir and verifies that the cleaned result
// is still confined to root. Sanitization already makes escapes impossible
// for stored names; this check also covers keys supplied at read time.
func joinWithinRoot(root, dir, name string) (string, error) {
	dest := filepath.Join(dir, name)
	rel, err := filepath.Rel(root, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeName, name)
	}
	return dest, nil
}
