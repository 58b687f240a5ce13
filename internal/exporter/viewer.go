package exporter

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/badele/wordfreq/internal/types"
)

///////////////////////////////////////////////////////////////////////////////
// Viewer
///////////////////////////////////////////////////////////////////////////////

const (
	viewerRankWidth  = 6
	viewerWordWidth  = 20
	viewerCountWidth = 9
)

var (
	barColdColor, _ = colorful.Hex("#3b82f6")
	barHotColor, _  = colorful.Hex("#ef4444")
)

// Viewer is a scrollable terminal view of a sorted report. The first row is a
// title, the last one a key help line, and every row in between shows one
// word with a bar proportional to its count.
type Viewer struct {
	screen  tcell.Screen
	entries []types.WordEntry
	total   uint64
	offset  int
	style   tcell.Style
}

func NewViewer(screen tcell.Screen, entries []types.WordEntry) *Viewer {
	return &Viewer{
		screen:  screen,
		entries: entries,
		total:   Total(entries),
		style:   tcell.StyleDefault,
	}
}

// View opens the terminal, runs the viewer until the user quits and restores
// the terminal.
func View(entries []types.WordEntry) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("error creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("error initializing screen: %w", err)
	}
	defer screen.Fini()

	return NewViewer(screen, entries).Run()
}

func (v *Viewer) Offset() int {
	return v.offset
}

func (v *Viewer) pageSize() int {
	_, h := v.screen.Size()
	return max(h-2, 1)
}

func (v *Viewer) maxOffset() int {
	return max(len(v.entries)-v.pageSize(), 0)
}

func (v *Viewer) scroll(delta int) {
	v.offset = min(max(v.offset+delta, 0), v.maxOffset())
}

// HandleKey applies one key press and reports whether the viewer should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.scroll(-1)
	case tcell.KeyDown:
		v.scroll(1)
	case tcell.KeyPgUp:
		v.scroll(-v.pageSize())
	case tcell.KeyPgDn:
		v.scroll(v.pageSize())
	case tcell.KeyHome:
		v.offset = 0
	case tcell.KeyEnd:
		v.offset = v.maxOffset()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'k':
			v.scroll(-1)
		case 'j':
			v.scroll(1)
		case ' ':
			v.scroll(v.pageSize())
		}
	}
	return false
}

// Run draws the report and processes events until the user quits.
func (v *Viewer) Run() error {
	v.Draw()

	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.scroll(0)
			v.screen.Sync()
			v.Draw()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
			v.Draw()
		}
	}
}

func (v *Viewer) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	title := fmt.Sprintf(" %d distinct words, %d total ", len(v.entries), v.total)
	v.drawText(0, 0, width, title, v.style.Bold(true).Reverse(true))

	var maxCount uint64
	if len(v.entries) > 0 {
		maxCount = v.entries[0].Count
	}

	barX := viewerRankWidth + viewerWordWidth + viewerCountWidth + 3
	barWidth := width - barX

	for row := 1; row < height-1; row++ {
		i := v.offset + row - 1
		if i >= len(v.entries) {
			break
		}
		e := v.entries[i]

		v.drawText(0, row, viewerRankWidth, fmt.Sprintf("%*d", viewerRankWidth, i+1), v.style.Dim(true))
		v.drawText(viewerRankWidth+1, row, viewerWordWidth, truncate(e.Word, viewerWordWidth), v.style)
		v.drawText(viewerRankWidth+viewerWordWidth+2, row, viewerCountWidth, fmt.Sprintf("%*d", viewerCountWidth, e.Count), v.style)

		if barWidth > 0 && maxCount > 0 {
			n := int(math.Ceil(float64(e.Count) / float64(maxCount) * float64(barWidth)))
			style := v.style.Foreground(v.barColor(i))
			for x := 0; x < n; x++ {
				v.screen.SetContent(barX+x, row, '█', nil, style)
			}
		}
	}

	help := " ↑/↓ scroll  PgUp/PgDn page  Home/End  q quit "
	v.drawText(0, height-1, width, help, v.style.Reverse(true))

	v.screen.Show()
}

// barColor fades from hot (most frequent) to cold along the report.
func (v *Viewer) barColor(i int) tcell.Color {
	t := 0.0
	if len(v.entries) > 1 {
		t = float64(i) / float64(len(v.entries)-1)
	}
	r, g, b := barHotColor.BlendLuv(barColdColor, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// drawText writes text one grapheme cluster per cell group, so combining
// marks stay attached to their base rune.
func (v *Viewer) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	col := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if col+w > maxWidth {
			return
		}
		runes := []rune(cluster)
		v.screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += w
	}
}
