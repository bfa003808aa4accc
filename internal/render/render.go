// Package render turns navigation state into a full frame of lines. Frames
// are rebuilt from scratch on every state transition; there is no diffing.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"shellmate/internal/terminfo"
	"shellmate/internal/theme"
)

// RowKind mirrors the node kinds the renderer needs to distinguish.
type RowKind int

const (
	RowItem RowKind = iota
	RowCategory
	RowToggle
)

// Row is one renderable menu line.
type Row struct {
	Label          string
	Kind           RowKind
	Depth          int
	ToggleOn       bool
	DisabledReason string
	Expandable     bool
	Expanded       bool
}

// View is everything a single frame depends on.
type View struct {
	Breadcrumb   []string
	Rows         []Row
	Selected     int
	FooterText   string
	Banner       string
	BannerError  bool
	ConfirmLabel string
	FilterQuery  string
	FilterActive bool
}

const (
	maxInnerWidth = 76
	footerHints   = "ENTER=select  ESC=back  Q=quit"
)

type borderSet struct {
	tl, tr, bl, br string
	h, v           string
	sepL, sepR     string
	tail           string
	closedMark     string
	openMark       string
}

func borders(unicode bool) borderSet {
	if unicode {
		return borderSet{
			tl: "┌", tr: "┐", bl: "└", br: "┘",
			h: "─", v: "│", sepL: "├", sepR: "┤",
			tail: "…", closedMark: "▸", openMark: "▾",
		}
	}
	return borderSet{
		tl: "/", tr: "\\", bl: "\\", br: "/",
		h: "-", v: "|", sepL: "|", sepR: "|",
		tail: "...", closedMark: ">", openMark: "v",
	}
}

// Frame renders the view into terminal lines, centered in the available
// width and height.
func Frame(caps terminfo.Capabilities, v View) []string {
	styles := theme.Default()
	b := borders(caps.Unicode)

	inner := caps.Width - 4
	if inner > maxInnerWidth {
		inner = maxInnerWidth
	}
	if inner < 20 {
		inner = 20
	}
	content := inner - 2 // one cell of padding each side

	type bodyLine struct {
		text  string
		style *lipgloss.Style
	}
	var body []bodyLine
	body = append(body, bodyLine{breadcrumbText(v.Breadcrumb, content, b), styles.Breadcrumb})
	body = append(body, bodyLine{})

	extra := 0
	if v.FilterQuery != "" || v.FilterActive {
		extra++
	}
	if v.ConfirmLabel != "" || v.Banner != "" {
		extra++
	}
	maxRows := caps.Height - 7 - extra // borders, breadcrumb, two separators, footer
	if maxRows < 1 {
		maxRows = 1
	}
	start, end := window(v.Selected, len(v.Rows), maxRows)
	if len(v.Rows) == 0 {
		msg := "(no entries)"
		if v.FilterQuery != "" {
			msg = fmt.Sprintf("No matches for %q", v.FilterQuery)
		}
		body = append(body, bodyLine{msg, styles.Disabled})
	}
	for i := start; i < end; i++ {
		row := v.Rows[i]
		style := styles.Item
		switch {
		case i == v.Selected:
			style = styles.SelectedItem
		case row.DisabledReason != "":
			style = styles.Disabled
		}
		body = append(body, bodyLine{rowText(row, i, i == v.Selected, content, b), style})
	}

	if v.FilterQuery != "" || v.FilterActive {
		body = append(body, bodyLine{"/" + v.FilterQuery, styles.Filter})
	}

	frame := make([]string, 0, len(body)+5)
	frame = append(frame, b.tl+strings.Repeat(b.h, inner)+b.tr)
	for _, line := range body {
		frame = append(frame, boxLine(caps, styles, b, padLine(line.text, content), line.style))
	}
	frame = append(frame, b.sepL+strings.Repeat(b.h, inner)+b.sepR)

	statusLine, statusStyle := statusText(v, styles)
	if statusLine != "" {
		frame = append(frame, boxLine(caps, styles, b, padLine(statusLine, content), statusStyle))
	}
	frame = append(frame, boxLine(caps, styles, b, padLine(footerText(v.FooterText, content), content), styles.Footer))
	frame = append(frame, b.bl+strings.Repeat(b.h, inner)+b.br)

	return center(frame, caps, inner+2)
}

func statusText(v View, styles *theme.Styles) (string, *lipgloss.Style) {
	switch {
	case v.ConfirmLabel != "":
		return fmt.Sprintf("Confirm %s? [y/N]", v.ConfirmLabel), styles.Confirm
	case v.Banner != "" && v.BannerError:
		return v.Banner, styles.ErrorBanner
	case v.Banner != "":
		return v.Banner, styles.Banner
	default:
		return "", nil
	}
}

func breadcrumbText(crumbs []string, width int, b borderSet) string {
	text := strings.Join(crumbs, " > ")
	return truncate.StringWithTail(text, uint(width), b.tail)
}

// rowText builds the plain (unstyled) text of one menu row: selection and
// number prefixes, indentation, toggle checkbox, category marker. The ">"
// cursor keeps the selection visible on terminals without color.
func rowText(row Row, index int, selected bool, width int, b borderSet) string {
	var sb strings.Builder
	if selected {
		sb.WriteString("> ")
	} else {
		sb.WriteString("  ")
	}
	if index < 9 {
		fmt.Fprintf(&sb, "%d ", index+1)
	} else {
		sb.WriteString("  ")
	}
	sb.WriteString(strings.Repeat("  ", row.Depth))
	switch row.Kind {
	case RowToggle:
		if row.ToggleOn {
			sb.WriteString("[X] ")
		} else {
			sb.WriteString("[ ] ")
		}
	case RowCategory:
		// marker appended after the label below
	default:
	}
	sb.WriteString(row.Label)
	if row.Kind == RowCategory {
		if row.Expandable && row.Expanded {
			sb.WriteString(" " + b.openMark)
		} else {
			sb.WriteString(" " + b.closedMark)
		}
	}
	if row.DisabledReason != "" {
		sb.WriteString(" (" + row.DisabledReason + ")")
	}
	return truncate.StringWithTail(sb.String(), uint(width), b.tail)
}

func footerText(metrics string, width int) string {
	if metrics == "" {
		return footerHints
	}
	gap := width - runewidth.StringWidth(footerHints) - runewidth.StringWidth(metrics)
	if gap < 2 {
		return footerHints
	}
	return footerHints + strings.Repeat(" ", gap) + metrics
}

// padLine pads text with spaces to exactly width display cells.
func padLine(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	return text + strings.Repeat(" ", width-w)
}

// boxLine wraps a padded content line in vertical borders, applying styles
// only when the terminal supports color.
func boxLine(caps terminfo.Capabilities, styles *theme.Styles, b borderSet, padded string, style *lipgloss.Style) string {
	body := " " + padded + " "
	edge := b.v
	if caps.Color {
		if style != nil {
			body = " " + style.Render(padded) + " "
		}
		edge = styles.Border.Render(b.v)
	}
	return edge + body + edge
}

// window returns the [start, end) slice of rows keeping selected visible.
func window(selected, total, max int) (int, int) {
	if total <= max {
		return 0, total
	}
	start := selected - max/2
	if start < 0 {
		start = 0
	}
	if start+max > total {
		start = total - max
	}
	return start, start + max
}

// center pads the frame into the middle of the terminal.
func center(frame []string, caps terminfo.Capabilities, boxWidth int) []string {
	left := (caps.Width - boxWidth) / 2
	if left < 0 {
		left = 0
	}
	margin := strings.Repeat(" ", left)
	top := (caps.Height - len(frame)) / 2
	if top < 0 {
		top = 0
	}
	out := make([]string, 0, top+len(frame))
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	for _, line := range frame {
		out = append(out, margin+line)
	}
	return out
}
