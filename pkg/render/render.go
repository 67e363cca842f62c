// Package render presents entries, statistics and health reports as
// markdown or JSON, bounded by a response size cap.
package render

import (
	"fmt"
	"strings"

	"github.com/aretw0/silo/pkg/core"
)

// CharacterLimit caps rendered responses. Oversized listings are re-rendered
// with fewer entries until they fit.
const CharacterLimit = 25000

// Format selects the presentation of a rendered response.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps a textual format onto a Format value. The empty string
// defaults to markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatJSON:
		return f, nil
	default:
		return "", &core.ValidationError{Field: "format", Reason: "must be markdown or json"}
	}
}

// Entries renders a listing in the given format. When the result exceeds
// CharacterLimit the newest half of the entries is kept and the listing is
// re-rendered, repeatedly, down to a floor of one entry. A truncated
// response carries a notice naming how many of the original entries are
// shown.
func Entries(entries []core.Entry, format Format) (string, bool, error) {
	out, err := renderEntries(entries, format)
	if err != nil || len(out) <= CharacterLimit {
		return out, false, err
	}

	total := len(entries)
	shown := entries
	for len(out) > CharacterLimit && len(shown) > 1 {
		shown = shown[len(shown)-len(shown)/2:]
		out, err = renderEntries(shown, format)
		if err != nil {
			return "", false, err
		}
	}

	notice := fmt.Sprintf(
		"\n\n⚠️ **Response Truncated**: Showing %d of %d entries. Use 'limit' parameter to control results.",
		len(shown), total)
	return out + notice, true, nil
}

func renderEntries(entries []core.Entry, format Format) (string, error) {
	if format == FormatJSON {
		return JSONEntries(entries)
	}
	return Markdown(entries), nil
}
