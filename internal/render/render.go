// Package render prints recommendation sets for people: styled cards on a
// terminal, plain text otherwise.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/shpitdev/air-assist/internal/recommend"
)

// Section headings, in display order.
const (
	HeadingHomes  = "Homes to Stay"
	HeadingVisit  = "Places to Visit"
	HeadingEat    = "Places to Eat"
	headingResult = "Your Recommendations"
)

const advisoryNote = "Health advisory: check vaccination and health requirements for this destination before you travel."

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Address returns the display text for an address.
func Address(s string) string { return orNotAvailable(s, "Address not available") }

// Cost returns the display text for a cost.
func Cost(s string) string { return orNotAvailable(s, "Cost not available") }

// Link returns the link to show, or "" when it should be hidden.
func Link(s string) string {
	if s == recommend.Unknown || strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func orNotAvailable(s, fallback string) string {
	if s == recommend.Unknown || strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Renderer writes recommendation sets to w.
type Renderer struct {
	w      io.Writer
	styled bool
	styles *Styles
}

// New returns a Renderer. styled selects lipgloss output; callers normally pass
// IsTerminal(os.Stdout).
func New(w io.Writer, styled bool) *Renderer {
	return &Renderer{w: w, styled: styled, styles: NewStyles(nil)}
}

// Set writes all three sections of set followed by the advisory note, if any.
func (r *Renderer) Set(set recommend.Set) error {
	var b strings.Builder
	b.WriteString(r.title(headingResult))
	b.WriteString("\n")

	r.section(&b, HeadingHomes, set.Homes)
	r.section(&b, HeadingVisit, set.PlacesToVisit)
	r.section(&b, HeadingEat, set.PlacesToEat)

	if set.Advisory {
		b.WriteString("\n")
		if r.styled {
			b.WriteString(r.styles.Warning.Render(advisoryNote))
		} else {
			b.WriteString(advisoryNote)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Error writes the user-facing message of a pipeline failure.
func (r *Renderer) Error(perr *recommend.Error) error {
	msg := recommend.MessageTransport
	if perr != nil && perr.Message != "" {
		msg = perr.Message
	}
	if r.styled {
		msg = r.styles.Error.Render(msg)
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *Renderer) title(s string) string {
	if r.styled {
		return r.styles.Title.Render(s)
	}
	return s + "\n" + strings.Repeat("=", len(s))
}

func (r *Renderer) section(b *strings.Builder, heading string, items []recommend.Item) {
	b.WriteString("\n")
	if r.styled {
		b.WriteString(r.styles.Section.Render(heading))
	} else {
		b.WriteString(heading + "\n" + strings.Repeat("-", len(heading)))
	}
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(r.muted("  No recommendations."))
		b.WriteString("\n")
		return
	}
	for _, it := range items {
		b.WriteString(r.card(it))
		b.WriteString("\n")
	}
}

func (r *Renderer) card(it recommend.Item) string {
	lines := make([]string, 0, 5)

	name := it.Name
	if r.styled {
		name = r.styles.Name.Render(name)
		if it.Featured {
			name = r.styles.Badge.Render("Featured") + " " + name
		}
	} else if it.Featured {
		name = "[Featured] " + name
	}
	lines = append(lines, name)

	if d := strings.TrimSpace(it.Description); d != "" {
		lines = append(lines, d)
	}
	lines = append(lines, r.muted(Address(it.Address)))
	lines = append(lines, r.muted(Cost(it.Cost)))
	if link := Link(it.Link); link != "" {
		if r.styled {
			link = r.styles.Link.Render(link)
		}
		lines = append(lines, link)
	}

	if r.styled {
		return r.styles.Card.Render(strings.Join(lines, "\n"))
	}
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) muted(s string) string {
	if r.styled {
		return r.styles.Muted.Render(s)
	}
	return s
}
