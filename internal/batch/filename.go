package batch

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	underscores = regexp.MustCompile(`_+`)
)

// Sanitize turns a theme name into a filename stem that is safe on
// every platform: letters, digits, underscore, and dash survive;
// everything else becomes an underscore. Never returns "".
func Sanitize(name string) string {
	s := strings.TrimSpace(name)
	s = unsafeChars.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "quiz"
	}
	return s
}

// Namer hands out unique filename stems for a batch. Repeated names
// get a numeric suffix: "rivers", "rivers_2", "rivers_3".
type Namer struct {
	counts map[string]int
	taken  map[string]bool
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{counts: make(map[string]int), taken: make(map[string]bool)}
}

// Next sanitizes name and returns a stem unused so far in this batch.
// Every returned stem is reserved, so a theme literally named "a_2"
// cannot collide with the suffixed stem handed out for a repeated "a".
func (n *Namer) Next(name string) string {
	base := Sanitize(name)
	for {
		stem := base
		n.counts[base]++
		if n.counts[base] > 1 {
			stem = fmt.Sprintf("%s_%d", base, n.counts[base])
		}
		if !n.taken[stem] {
			n.taken[stem] = true
			return stem
		}
	}
}
