// Package browse shows a dir-stats report in a two-pane terminal UI.
package browse

import (
	"fmt"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/datatug/dirstats/pkg/chroma2tcell"
	"github.com/datatug/dirstats/pkg/fsutils"
	"github.com/datatug/dirstats/pkg/report"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	Tool    = "dir-stats-browse"
	Version = "1.0.0"
)

const (
	entriesPage = "entries"
	sourcePage  = "source"
)

// App is the part of tview.Application the browser drives.
type App interface {
	SetFocus(p tview.Primitive)
	Stop()
}

type Option func(*Browser)

func WithTitle(title string) Option {
	return func(b *Browser) {
		b.title = title
	}
}

type Browser struct {
	*tview.Flex

	Groups  *tview.Table
	Entries *tview.Table
	Source  *tview.TextView

	right *tview.Pages
	app   App
	rep   *report.Report
	title string

	showSource bool
	rightFocus bool
}

var colorizeReport = chroma2tcell.ColorizeReport

// New builds the browser for rep. source is the raw report text shown on
// the source page.
func New(app App, rep *report.Report, source string, options ...Option) *Browser {
	b := &Browser{
		Flex:    tview.NewFlex(),
		Groups:  tview.NewTable(),
		Entries: tview.NewTable(),
		Source:  tview.NewTextView(),
		right:   tview.NewPages(),
		app:     app,
		rep:     rep,
	}
	for _, option := range options {
		option(b)
	}

	selectedStyle := tcell.StyleDefault
	selectedStyle = selectedStyle.Foreground(tcell.ColorBlack)
	selectedStyle = selectedStyle.Background(tcell.ColorWhiteSmoke)

	b.Groups.SetSelectable(true, false)
	b.Groups.SetSelectedStyle(selectedStyle)
	b.Groups.SetBorder(true)
	b.Groups.SetTitle(" Groups ")
	b.Groups.SetSelectionChangedFunc(b.selectionChanged)
	b.Groups.SetInputCapture(b.inputCapture)

	b.Entries.SetSelectable(true, false)
	b.Entries.SetSelectedStyle(selectedStyle)
	b.Entries.SetBorder(true)
	b.Entries.SetInputCapture(b.inputCapture)

	b.Source.SetDynamicColors(true)
	b.Source.SetBorder(true)
	b.Source.SetTitle(" Source ")
	b.Source.SetInputCapture(b.inputCapture)
	text, err := colorizeReport(source, lexers.Get)
	if err != nil {
		text = tview.Escape(source)
	}
	b.Source.SetText(text)

	b.right.AddPage(entriesPage, b.Entries, true, true)
	b.right.AddPage(sourcePage, b.Source, true, false)

	b.Flex.SetDirection(tview.FlexColumn)
	b.Flex.SetTitle(b.title)
	b.Flex.AddItem(b.Groups, 0, 1, true)
	b.Flex.AddItem(b.right, 0, 2, false)

	b.updateGroups()
	if len(rep.Groups()) > 0 {
		b.Groups.Select(0, 0)
		b.selectionChanged(0, 0)
	}
	return b
}

// ShowingSource reports whether the right pane shows the raw report.
func (b *Browser) ShowingSource() bool {
	return b.showSource
}

// ToggleSource switches the right pane between entries and raw text.
func (b *Browser) ToggleSource() {
	b.showSource = !b.showSource
	page := entriesPage
	if b.showSource {
		page = sourcePage
	}
	b.right.SwitchToPage(page)
	if b.rightFocus {
		b.app.SetFocus(b.rightPrimitive())
	}
}

// SwitchFocus moves focus between the panes.
func (b *Browser) SwitchFocus() {
	b.rightFocus = !b.rightFocus
	if b.rightFocus {
		b.app.SetFocus(b.rightPrimitive())
		return
	}
	b.app.SetFocus(b.Groups)
}

func (b *Browser) rightPrimitive() tview.Primitive {
	if b.showSource {
		return b.Source
	}
	return b.Entries
}

func (b *Browser) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		b.SwitchFocus()
		return nil
	case tcell.KeyEscape:
		b.app.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			b.app.Stop()
			return nil
		case 's':
			b.ToggleSource()
			return nil
		}
	}
	return event
}

func (b *Browser) selectionChanged(row, _ int) {
	groups := b.rep.Groups()
	if row < 0 || row >= len(groups) {
		return
	}
	b.setEntries(groups[row])
}

const cellTextColor = tcell.ColorLightGray

func (b *Browser) updateGroups() {
	b.Groups.Clear()
	for row, g := range b.rep.Groups() {
		files, size := g.Totals()

		nameCell := tview.NewTableCell(tview.Escape(g.Key))
		nameCell.SetExpansion(1)
		nameCell.SetReference(g)
		b.Groups.SetCell(row, 0, nameCell)

		countCell := tview.NewTableCell(countText(files))
		countCell.SetAlign(tview.AlignRight)
		countCell.SetTextColor(cellTextColor)
		b.Groups.SetCell(row, 1, countCell)

		b.Groups.SetCell(row, 2, GetSizeCell(size, cellTextColor))
	}
}

func (b *Browser) setEntries(g *report.Group) {
	b.Entries.Clear()
	files, size := g.Totals()
	b.Entries.SetTitle(fmt.Sprintf(" %s: %s, %s ", tview.Escape(g.Key), countText(files), fsutils.SizeText(size)))
	if g.Len() == 0 {
		emptyCell := tview.NewTableCell("No matching files found.")
		emptyCell.SetTextColor(tcell.ColorGray)
		emptyCell.SetSelectable(false)
		b.Entries.SetCell(0, 0, emptyCell)
		return
	}
	for row, e := range g.Entries() {
		keyCell := tview.NewTableCell(tview.Escape(e.Key))
		keyCell.SetExpansion(1)
		keyCell.SetReference(e)
		b.Entries.SetCell(row, 0, keyCell)

		size, err := e.Size()
		if err != nil {
			badCell := tview.NewTableCell(tview.Escape(e.Value) + "  ")
			badCell.SetAlign(tview.AlignRight)
			badCell.SetTextColor(tcell.ColorRed)
			b.Entries.SetCell(row, 1, badCell)
			continue
		}
		b.Entries.SetCell(row, 1, GetSizeCell(size, cellTextColor))
	}
	b.Entries.ScrollToBeginning()
}

func countText(n int) string {
	if n == 1 {
		return "[ghostwhite]1[-] file "
	}
	return fmt.Sprintf("[ghostwhite]%d[-] files", n)
}

// GetSizeCell returns a right aligned size cell coloured by magnitude.
func GetSizeCell(size int64, defaultColor tcell.Color) *tview.TableCell {
	sizeText := "  " + fsutils.SizeText(size)
	sizeCell := tview.NewTableCell(sizeText)
	sizeCell.SetAlign(tview.AlignRight)
	if size > 1024*1024*1024*1024 { // TiB
		sizeCell.SetTextColor(tcell.ColorOrangeRed)
	} else if size > 1024*1024*1024 { // GiB
		sizeCell.SetTextColor(tcell.ColorYellow)
	} else if size > 1024*1024 { // MiB
		sizeCell.SetTextColor(tcell.ColorLightGreen)
	} else if size > 1024 { // KiB
		sizeCell.SetTextColor(tcell.ColorWhiteSmoke)
	} else if size > 0 {
		sizeCell.SetText(sizeText + " ")
		sizeCell.SetTextColor(defaultColor)
	} else {
		sizeCell.SetText(sizeText + " ")
		sizeCell.SetTextColor(tcell.ColorLightBlue)
	}
	return sizeCell
}

type tviewApp struct {
	*tview.Application
}

func (a tviewApp) SetFocus(p tview.Primitive) {
	_ = a.Application.SetFocus(p)
}

// Setup installs a browser for rep as the root of app.
func Setup(app *tview.Application, rep *report.Report, source, title string) *Browser {
	b := New(tviewApp{Application: app}, rep, source, WithTitle(title))
	app.EnableMouse(true)
	app.SetRoot(b, true)
	app.SetFocus(b.Groups)
	return b
}
