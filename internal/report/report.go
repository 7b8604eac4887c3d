// Package report renders computed war structures into German HTML text
// blocks for the chat collaborator. Sort orders, tie-breaks and the final
// length cap are load-bearing behavior, not cosmetics.
package report

import (
	"fmt"
	"strings"
	"time"

	"clanwatch/internal/config"
	"clanwatch/internal/constants"
)

type Renderer struct {
	loc *time.Location

	// overridable for tests
	now func() time.Time
}

func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{loc: cfg.Timezone, now: time.Now}
}

// Now is the renderer's clock, shared with callers that need a consistent
// reference time for one report.
func (r *Renderer) Now() time.Time { return r.now() }

// truncate cuts a finished block to the Telegram limit. Applied as the very
// last step; long reports may end mid-line, which is accepted behavior.
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= constants.MaxMessageLength {
		return s
	}
	return string(r[:constants.MaxMessageLength])
}

// bar renders a ░/█ progress bar for a 0..1 fraction.
func bar(pct float64) string {
	width := constants.ProgressBarWidth
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// agoStr renders a coarse German "vor X" age.
func agoStr(t, now time.Time) string {
	if t.IsZero() {
		return "unbekannt"
	}
	secs := int(now.Sub(t).Seconds())
	if secs < 90 {
		return "vor 1 Min"
	}
	if mins := secs / 60; mins < 90 {
		return fmt.Sprintf("vor %d Min", mins)
	}
	if hrs := secs / 3600; hrs < 36 {
		return fmt.Sprintf("vor %d Std", hrs)
	}
	if days := secs / 86400; days < 14 {
		return fmt.Sprintf("vor %d T", days)
	}
	if weeks := secs / 604800; weeks < 10 {
		return fmt.Sprintf("vor %d W", weeks)
	}
	return t.Format("am 02.01.2006")
}

func (r *Renderer) fmtDate(t time.Time) string {
	if t.IsZero() {
		return "unbekannt"
	}
	return t.In(r.loc).Format("02.01.2006")
}

// group inserts German thousands separators: 12345 -> "12.345".
func group(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
