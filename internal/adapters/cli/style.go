// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/fatih/color"

	"github.com/example/madar/internal/core/status"
)

const rule = "────────────────────────────────────────────────────────────────"

var tagColors = map[status.ColorTag]*color.Color{
	status.ColorSuccess:   color.New(color.FgHiGreen),
	status.ColorPrimary:   color.New(color.FgHiBlue),
	status.ColorSecondary: color.New(color.FgWhite),
	status.ColorInfo:      color.New(color.FgCyan),
	status.ColorDanger:    color.New(color.FgRed),
	status.ColorWarning:   color.New(color.FgYellow),
}

// tagColor returns the terminal colour of a display tag.
func tagColor(tag status.ColorTag) *color.Color {
	if c, ok := tagColors[tag]; ok {
		return c
	}
	return tagColors[status.ColorSecondary]
}

// statusCell pads a status to width and colours it. Padding happens first so
// escape codes do not break column alignment.
func statusCell(s string, width int) string {
	return tagColor(status.StatusColor(s)).Sprintf("%-*s", width, s)
}

// priorityCell pads and colours a priority or escalation level.
func priorityCell(p string, width int) string {
	return tagColor(status.PriorityColor(p)).Sprintf("%-*s", width, p)
}

// idCell pads and colours an ID by its prefix.
func idCell(id string, width int) string {
	prefix, _, _ := strings.Cut(id, "-")
	return idColor(prefix).Sprintf("%-*s", width, id)
}

// idColor returns a deterministic color for an ID prefix (PLANT, AUDIT, ACT).
// FNV-1a keeps every ID of one type on the same colour.
func idColor(prefix string) *color.Color {
	h := fnv.New32a()
	h.Write([]byte(prefix))
	colorCode := 16 + (h.Sum32() % 216)
	return color.New(color.Attribute(38), color.Attribute(5), color.Attribute(colorCode))
}

// ok formats a success line.
func ok(format string, args ...any) string {
	return color.New(color.FgHiGreen).Sprint("✓ ") + fmt.Sprintf(format, args...)
}

// warn formats a warning marker.
func warn(format string, args ...any) string {
	return color.New(color.FgYellow).Sprintf("⚠ "+format, args...)
}

func scoreText(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *score)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
