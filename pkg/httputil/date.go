package httputil

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout matches HTTP dates with a numeric zone offset. Servers send
// "GMT", which is rewritten to "+0000" before parsing so the layout stays
// purely numeric and free of zone-name ambiguity.
const dateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// ParseDate parses an HTTP date string of the form
// "Thu, 20 Nov 2025 09:17:38 GMT" and returns milliseconds since the Unix
// epoch. The "GMT" suffix is normalized to a zero UTC offset; strings in any
// other shape fail with an error.
func ParseDate(s string) (int64, error) {
	t, err := time.Parse(dateLayout, strings.Replace(s, " GMT", " +0000", 1))
	if err != nil {
		return 0, fmt.Errorf("malformed http date %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}
