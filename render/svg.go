package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/FlorianRuen/sclng-languages-card/model"
	"github.com/mattn/go-runewidth"
)

const (
	CanvasWidth = 600
	BaseHeight  = 180
	RowHeight   = 35
	FirstRowY   = 145
	BarX        = 150
	BarMaxWidth = 350
	BarHeight   = 14
	NameCells   = 12

	marginX      = 20
	labelX       = CanvasWidth - marginX
	separatorY   = 110
	footerOffset = 25

	DefaultTitle = "Most Used Languages"
)

const styleTemplate = `  <style>
    text { font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace; font-size: 14px; fill: %s; }
    .muted { fill: %s; }
    .prompt { fill: %s; font-weight: bold; }
    .cursor { animation: blink 1s step-end infinite; }
    @keyframes blink { 50%% { opacity: 0; } }
  </style>
`

// ambiguous runes count as one cell whatever the locale of the machine rendering the card
var cells = &runewidth.Condition{EastAsianWidth: false}

type Option func(*renderer)

type renderer struct {
	title string
	theme Theme
}

func WithTitle(title string) Option {
	return func(r *renderer) {
		if strings.TrimSpace(title) != "" {
			r.title = title
		}
	}
}

func WithTheme(theme Theme) Option { return func(r *renderer) { r.theme = theme } }

// layout holds every computed coordinate, the writers below only print it
type layout struct {
	height          int
	repositoryCount int
	rows            []row
}

type row struct {
	y          int
	label      string
	color      string
	barWidth   float64
	percentage float64
}

// Height is the canvas height for n ranked languages
func Height(n int) int {
	return BaseHeight + RowHeight*n
}

// RenderSVG draws the terminal window card for the ranked languages
// the output only depends on its arguments, rendering twice yields the same bytes
func RenderSVG(languages []model.RankedLanguage, repositoryCount int, opts ...Option) []byte {
	r := renderer{title: DefaultTitle, theme: DarkTheme}
	for _, opt := range opts {
		opt(&r)
	}

	l := r.buildLayout(languages, repositoryCount)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		CanvasWidth, l.height, CanvasWidth, l.height)
	fmt.Fprintf(&buf, styleTemplate, r.theme.Text, r.theme.Muted, r.theme.Prompt)

	r.writeHeader(&buf, l)
	r.writeRows(&buf, l)
	r.writeFooter(&buf, l)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r renderer) buildLayout(languages []model.RankedLanguage, repositoryCount int) layout {
	l := layout{
		height:          Height(len(languages)),
		repositoryCount: repositoryCount,
		rows:            make([]row, 0, len(languages)),
	}

	for i, lang := range languages {
		percentage := clampPercentage(lang.Percentage)

		l.rows = append(l.rows, row{
			y:          FirstRowY + RowHeight*i,
			label:      nameLabel(lang.Name),
			color:      r.theme.barColor(lang.Name),
			barWidth:   percentage / 100 * BarMaxWidth,
			percentage: percentage,
		})
	}

	return l
}

func (r renderer) writeHeader(buf *bytes.Buffer, l layout) {
	t := r.theme

	buf.WriteString(`  <g id="header">` + "\n")
	fmt.Fprintf(buf, `    <rect x="0.5" y="0.5" width="%d" height="%d" rx="10" fill="%s" stroke="%s"/>`+"\n",
		CanvasWidth-1, l.height-1, t.Background, t.Border)
	fmt.Fprintf(buf, `    <path d="M0.5 30.5 V10.5 A10 10 0 0 1 10.5 0.5 H%d.5 A10 10 0 0 1 %d.5 10.5 V30.5 Z" fill="%s"/>`+"\n",
		CanvasWidth-11, CanvasWidth-1, t.TitleBar)
	fmt.Fprintf(buf, `    <line x1="0.5" y1="30.5" x2="%d.5" y2="30.5" stroke="%s"/>`+"\n", CanvasWidth-1, t.Border)
	buf.WriteString(`    <circle cx="20" cy="15" r="6" fill="#ff5f56"/>` + "\n")
	buf.WriteString(`    <circle cx="40" cy="15" r="6" fill="#ffbd2e"/>` + "\n")
	buf.WriteString(`    <circle cx="60" cy="15" r="6" fill="#27c93f"/>` + "\n")
	fmt.Fprintf(buf, `    <text x="%d" y="20" text-anchor="middle" class="muted">%s</text>`+"\n", CanvasWidth/2, escape(r.title))
	fmt.Fprintf(buf, `    <text x="%d" y="65"><tspan class="prompt">$</tspan> langstat --repos %d --top %d</text>`+"\n",
		marginX, l.repositoryCount, len(l.rows))
	fmt.Fprintf(buf, `    <text x="%d" y="90" class="muted"># share of bytes per language, markup and styles excluded</text>`+"\n", marginX)
	fmt.Fprintf(buf, `    <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`+"\n", marginX, separatorY, labelX, separatorY, t.Border)
	buf.WriteString("  </g>\n")
}

func (r renderer) writeRows(buf *bytes.Buffer, l layout) {
	buf.WriteString(`  <g id="languages">` + "\n")

	for _, rw := range l.rows {
		barY := rw.y - 11

		buf.WriteString(`    <g class="language">` + "\n")
		fmt.Fprintf(buf, `      <text x="%d" y="%d" xml:space="preserve">%s</text>`+"\n", marginX, rw.y, escape(rw.label))
		fmt.Fprintf(buf, `      <rect x="%d" y="%d" width="%d" height="%d" rx="3" fill="%s"/>`+"\n",
			BarX, barY, BarMaxWidth, BarHeight, r.theme.Track)
		fmt.Fprintf(buf, `      <rect x="%d" y="%d" width="%.1f" height="%d" rx="3" fill="%s"/>`+"\n",
			BarX, barY, rw.barWidth, BarHeight, rw.color)
		fmt.Fprintf(buf, `      <text x="%d" y="%d" text-anchor="end">%.1f%%</text>`+"\n", labelX, rw.y, rw.percentage)
		buf.WriteString("    </g>\n")
	}

	buf.WriteString("  </g>\n")
}

func (r renderer) writeFooter(buf *bytes.Buffer, l layout) {
	buf.WriteString(`  <g id="footer">` + "\n")
	fmt.Fprintf(buf, `    <text x="%d" y="%d"><tspan class="prompt">$</tspan> <tspan class="cursor">_</tspan></text>`+"\n",
		marginX, l.height-footerOffset)
	buf.WriteString("  </g>\n")
}

// nameLabel fits a language name in a fixed number of terminal cells
func nameLabel(name string) string {
	return cells.FillRight(cells.Truncate(name, NameCells, "…"), NameCells)
}

func clampPercentage(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

func escape(s string) string {
	var b strings.Builder
	// strings.Builder writes never fail
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
