package transfer

import (
	"regexp"
	"strings"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9_\-]+`)

// Filename builds a safe download name from the prediction name: lower
// case, underscores for spaces, unsafe characters stripped, a YYYY-MM-DD
// date, and the extension.
func Filename(name, extension string, now time.Time) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "_")
	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = strings.Trim(base, "_-")
	if base == "" {
		base = "prediction"
	}
	return base + "_" + now.Format("2006-01-02") + "." + strings.TrimPrefix(extension, ".")
}
