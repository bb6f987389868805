package recommend

import "regexp"

// fenceRe matches a markdown code fence (with an optional language hint) together
// with the one line break that ties it to the payload.
var fenceRe = regexp.MustCompile("(?:\r?\n)?```[A-Za-z0-9_.+-]*[ \t]*(?:\r?\n)?")

// Sanitize removes markdown code fences from raw model text. It is applied until
// nothing changes, so Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	out := raw
	for {
		next := fenceRe.ReplaceAllString(out, "")
		if next == out {
			return out
		}
		out = next
	}
}
