package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-runewidth"

	"github.com/bkmeneguello/codeview/internal/config"
	"github.com/bkmeneguello/codeview/internal/document"
	"github.com/bkmeneguello/codeview/internal/export"
	"github.com/bkmeneguello/codeview/internal/fileio"
	"github.com/bkmeneguello/codeview/internal/layout"
	"github.com/bkmeneguello/codeview/internal/logging"
	"github.com/bkmeneguello/codeview/internal/syntax"
	"github.com/bkmeneguello/codeview/internal/theme"
	"github.com/bkmeneguello/codeview/internal/viewerr"
)

const (
	tabBarHeight = 1
	statusHeight = 1
	scrollStepX  = 4

	// enryPeek bounds how much content the language guesser reads.
	enryPeek = 8 << 10
)

type inputMode int

const (
	modeView inputMode = iota
	modeCommand
	modeSearch
	modeGoto
	modeExport
)

var prompts = map[inputMode]string{
	modeSearch: "Find: ",
	modeGoto:   "Goto line: ",
	modeExport: "Export to: ",
}

// viewport is the scroll position of one document.
type viewport struct {
	offsetX, offsetY int
}

// Viewer holds all state for the code viewer: the open documents, their
// scroll positions, the prompt line and the status message.
type Viewer struct {
	screen tcell.Screen
	style  tcell.Style
	w, h   int

	workspace   *document.Workspace
	views       map[*document.Document]*viewport
	hints       map[*document.Document]string
	highlighter *SyntaxHighlighter
	cache       *HighlightCache
	commands    *CommandHandler

	cfg    config.Config
	face   *export.Face
	ctx    context.Context
	logger *log.Logger

	dirty  bool   // True if anything on screen has changed
	status string // Message shown once in the status bar
	quit   bool

	mode  inputMode
	input []rune

	showLineNumbers bool
}

// NewViewer initializes a Viewer drawing on screen.
func NewViewer(ctx context.Context, screen tcell.Screen, cfg config.Config, palette theme.Palette) *Viewer {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	v := &Viewer{
		screen:          screen,
		style:           style,
		workspace:       document.NewWorkspace(),
		views:           make(map[*document.Document]*viewport),
		hints:           make(map[*document.Document]string),
		highlighter:     NewSyntaxHighlighter(style, palette),
		cache:           NewHighlightCache(),
		commands:        NewCommandHandler(),
		cfg:             cfg,
		ctx:             ctx,
		logger:          logging.FromContext(ctx),
		dirty:           true,
		showLineNumbers: cfg.ShowLineNumbers,
	}
	v.w, v.h = screen.Size()
	return v
}

// Run draws and processes events until the user quits.
func (v *Viewer) Run() {
	v.draw()
	for !v.quit {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		v.handleEvent(ev)
		v.draw()
	}
}

// Close releases the export font.
func (v *Viewer) Close() {
	if v.face != nil {
		_ = v.face.Close()
		v.face = nil
	}
}

// handleEvent processes one event. It returns false once the viewer
// should exit.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if v.mode == modeView {
			v.handleViewKey(ev)
		} else {
			v.handleInputKey(ev)
		}
	case *tcell.EventResize:
		v.updateScreenSize()
	}
	return !v.quit
}

func (v *Viewer) updateScreenSize() {
	v.screen.Sync()
	w, h := v.screen.Size()
	if w != v.w || h != v.h {
		v.w, v.h = w, h
		v.dirty = true
	}
}

// showStatus sets the message shown in the status bar on the next draw.
func (v *Viewer) showStatus(msg string) {
	v.status = msg
	v.dirty = true
}

// showError reports err in the status bar. Cancellations are not shown.
func (v *Viewer) showError(err error) {
	msg := viewerr.Message(err)
	if msg == "" {
		return
	}
	v.showStatus(viewerr.Title(err) + ": " + msg)
}

// activeDoc returns the active document, or reports that none is open.
func (v *Viewer) activeDoc() *document.Document {
	doc := v.workspace.Active()
	if doc == nil {
		v.showStatus("No file open")
	}
	return doc
}

func (v *Viewer) openFile(path string) {
	doc, created, err := v.workspace.Open(path, fileio.Load)
	if err != nil {
		v.logger.Error("open failed", logging.FieldPath, path, logging.FieldError, err)
		v.showError(err)
		return
	}
	if created {
		doc.SetShowComments(v.cfg.ShowComments)
		v.views[doc] = &viewport{}
		v.logger.Info("opened",
			logging.FieldPath, doc.Path,
			logging.FieldLanguage, doc.Language.String(),
			logging.FieldBytes, len(doc.Content))
	}
	v.dirty = true
}

func (v *Viewer) reloadActive() {
	doc := v.activeDoc()
	if doc == nil {
		return
	}
	content, err := fileio.Load(doc.Path)
	if err != nil {
		v.logger.Error("reload failed", logging.FieldPath, doc.Path, logging.FieldError, err)
		v.showError(err)
		return
	}
	doc.Reload(content)
	delete(v.hints, doc)
	v.showStatus("Reloaded " + doc.Name)
}

// closeActive closes the active tab and drops everything kept for it.
func (v *Viewer) closeActive() {
	doc := v.activeDoc()
	if doc == nil {
		return
	}
	v.workspace.Close(doc)
	delete(v.views, doc)
	delete(v.hints, doc)
	v.cache.Clear()
	v.logger.Info("closed", logging.FieldPath, doc.Path)
	v.dirty = true
}

func (v *Viewer) toggleComments() {
	doc := v.activeDoc()
	if doc == nil {
		return
	}
	doc.ToggleComments()
	v.logger.Debug("comments toggled", logging.FieldPath, doc.Path, logging.FieldShowComments, doc.ShowComments)
	if doc.ShowComments {
		v.showStatus("Comments shown")
	} else {
		v.showStatus("Comments hidden")
	}
}

func (v *Viewer) toggleShowLineNumbers() {
	v.showLineNumbers = !v.showLineNumbers
	v.dirty = true
}

func (v *Viewer) setTheme(name string) {
	p, err := theme.Load(name)
	if err != nil {
		v.showStatus(err.Error())
		return
	}
	v.highlighter.SetPalette(v.style, p)
	v.showStatus("Theme: " + p.Name)
}

func (v *Viewer) runSearch(query string) {
	doc := v.activeDoc()
	if doc == nil {
		return
	}
	doc.Search.Active = true
	doc.SetQuery(query)
	v.logger.Debug("search",
		logging.FieldQuery, query,
		logging.FieldCaseSensitive, doc.Search.CaseSensitive,
		logging.FieldMatches, len(doc.Search.Matches))
	v.nextMatch()
}

func (v *Viewer) toggleCaseSensitive() {
	doc := v.activeDoc()
	if doc == nil {
		return
	}
	doc.SetCaseSensitive(!doc.Search.CaseSensitive)
	if doc.Search.CaseSensitive {
		v.showStatus("Case sensitive search")
	} else {
		v.showStatus("Case insensitive search")
	}
}

func (v *Viewer) nextMatch() {
	if doc := v.activeDoc(); doc != nil {
		v.reportMatch(doc, doc.NextMatch())
	}
}

func (v *Viewer) prevMatch() {
	if doc := v.activeDoc(); doc != nil {
		v.reportMatch(doc, doc.PrevMatch())
	}
}

func (v *Viewer) reportMatch(doc *document.Document, ok bool) {
	if !ok {
		if doc.Search.Query != "" {
			v.showStatus(fmt.Sprintf("No matches for %q", doc.Search.Query))
		}
		return
	}
	v.showStatus(fmt.Sprintf("Match %d of %d", doc.Search.Current+1, len(doc.Search.Matches)))
}

func (v *Viewer) gotoLine(text string) {
	doc := v.activeDoc()
	if doc == nil {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		v.showStatus("Invalid line number: " + text)
		return
	}
	doc.GotoLine(n)
	v.dirty = true
}

// exportActive renders the active document to a PNG at path. An empty
// path is a cancelled prompt.
func (v *Viewer) exportActive(path string) {
	doc := v.activeDoc()
	if doc == nil {
		return
	}
	if v.face == nil {
		face, err := export.LoadFace(v.cfg.FontPath, v.cfg.FontSize, v.cfg.LineSpacing)
		if err != nil {
			v.logger.Error("font load failed", logging.FieldError, err)
			v.showError(err)
			return
		}
		v.face = face
	}

	opts := export.Options{
		Palette:     v.highlighter.Palette(),
		TabWidth:    v.cfg.TabWidth,
		Padding:     v.cfg.Padding,
		MaxDim:      v.cfg.MaxTextureDim,
		LineNumbers: v.showLineNumbers,
	}
	out, err := export.Export(v.ctx, doc, v.face, opts, func(string) (string, error) {
		if path = strings.TrimSpace(path); path == "" {
			return "", viewerr.ErrCancelled
		}
		return path, nil
	})
	if err != nil {
		v.showError(err)
		return
	}
	v.showStatus("Code image saved to: " + out)
}

func (v *Viewer) beginInput(mode inputMode, initial string) {
	v.mode = mode
	v.input = []rune(initial)
	v.dirty = true
}

func (v *Viewer) beginSearch() {
	if doc := v.activeDoc(); doc != nil {
		doc.Search.Active = true
		v.beginInput(modeSearch, doc.Search.Query)
	}
}

func (v *Viewer) beginExport() {
	if doc := v.activeDoc(); doc != nil {
		v.beginInput(modeExport, export.DefaultName(doc.Name))
	}
}

func (v *Viewer) scroll(dy int) {
	doc := v.workspace.Active()
	if doc == nil {
		return
	}
	vp := v.views[doc]
	vp.offsetY += dy
	v.clampView(doc, vp)
	v.dirty = true
}

func (v *Viewer) scrollX(dx int) {
	doc := v.workspace.Active()
	if doc == nil {
		return
	}
	vp := v.views[doc]
	vp.offsetX = max(0, vp.offsetX+dx)
	v.dirty = true
}

func (v *Viewer) clampView(doc *document.Document, vp *viewport) {
	vp.offsetY = max(0, min(vp.offsetY, doc.LineCount()-1))
	vp.offsetX = max(0, vp.offsetX)
}

// applyScroll honours a pending goto or match navigation by centering its
// line in a view of height rows.
func (v *Viewer) applyScroll(doc *document.Document, vp *viewport, height int) {
	if line, ok := doc.TakeScroll(); ok {
		vp.offsetY = line - 1 - height/2
	}
	v.clampView(doc, vp)
}

// handleViewKey processes keys while no prompt is open.
func (v *Viewer) handleViewKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		v.quit = true
	case tcell.KeyCtrlF:
		if doc := v.workspace.Active(); doc != nil && doc.Search.Active {
			doc.ToggleSearch()
		} else {
			v.beginSearch()
		}
	case tcell.KeyCtrlG:
		if v.activeDoc() != nil {
			v.beginInput(modeGoto, "")
		}
	case tcell.KeyCtrlE:
		v.beginExport()
	case tcell.KeyCtrlW:
		v.closeActive()
	case tcell.KeyTab:
		v.workspace.Next()
	case tcell.KeyBacktab:
		v.workspace.Prev()
	case tcell.KeyEsc:
		if doc := v.workspace.Active(); doc != nil && doc.Search.Active {
			doc.ToggleSearch()
		}
	case tcell.KeyEnter, tcell.KeyF3:
		v.nextMatch()
	case tcell.KeyUp:
		v.scroll(-1)
	case tcell.KeyDown:
		v.scroll(1)
	case tcell.KeyPgUp:
		v.scroll(-(v.codeHeight() - 1))
	case tcell.KeyPgDn:
		v.scroll(v.codeHeight() - 1)
	case tcell.KeyHome:
		v.scroll(-v.lineCount())
	case tcell.KeyEnd:
		v.scroll(v.lineCount())
	case tcell.KeyLeft:
		v.scrollX(-scrollStepX)
	case tcell.KeyRight:
		v.scrollX(scrollStepX)
	case tcell.KeyRune:
		switch ev.Rune() {
		case ':':
			v.beginInput(modeCommand, ":")
		case '/':
			v.beginSearch()
		case 'n':
			v.nextMatch()
		case 'N':
			v.prevMatch()
		case 'c':
			v.toggleComments()
		case 'j':
			v.scroll(1)
		case 'k':
			v.scroll(-1)
		case 'q':
			v.quit = true
		}
	}
	v.dirty = true
}

// handleInputKey edits the prompt line and submits it on Enter.
func (v *Viewer) handleInputKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEsc:
		v.mode = modeView
		v.input = nil
	case tcell.KeyEnter:
		mode, text := v.mode, string(v.input)
		v.mode = modeView
		v.input = nil
		v.submit(mode, text)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		// The ':' of a command stays.
		if n := len(v.input); n > 0 && (v.mode != modeCommand || n > 1) {
			v.input = v.input[:n-1]
		}
	case tcell.KeyRune:
		v.input = append(v.input, ev.Rune())
	}
	v.dirty = true
}

func (v *Viewer) submit(mode inputMode, text string) {
	switch mode {
	case modeCommand:
		v.commands.HandleCommand(v, text)
	case modeSearch:
		v.runSearch(text)
	case modeGoto:
		v.gotoLine(text)
	case modeExport:
		v.exportActive(text)
	}
}

func (v *Viewer) lineCount() int {
	if doc := v.workspace.Active(); doc != nil {
		return doc.LineCount()
	}
	return 1
}

func (v *Viewer) searchBarVisible() bool {
	doc := v.workspace.Active()
	return doc != nil && doc.Search.Active
}

// codeHeight is the number of rows left for code between the tab bar and
// the status line.
func (v *Viewer) codeHeight() int {
	h := v.h - tabBarHeight - statusHeight
	if v.searchBarVisible() {
		h--
	}
	return max(h, 0)
}

// draw renders the tab bar, the code of the active document, the search bar
// and the status line. It skips rendering if nothing changed.
func (v *Viewer) draw() {
	if !v.dirty {
		return
	}

	v.screen.Clear()
	v.screen.Fill(' ', v.highlighter.Base())

	v.drawTabs()
	if doc := v.workspace.Active(); doc != nil {
		v.drawCode(doc)
		if doc.Search.Active {
			v.drawSearchBar(doc)
		}
	} else {
		v.drawText(0, tabBarHeight, "No file open. Use :e <file> to open one.", v.highlighter.Gutter())
	}
	v.drawStatusLine()

	v.screen.Show()
	v.dirty = false
}

// drawText draws s from column x of row y and returns the column after it.
func (v *Viewer) drawText(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= v.w {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}

func (v *Viewer) fillRow(y int, style tcell.Style) {
	for x := range v.w {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (v *Viewer) drawTabs() {
	v.fillRow(0, v.style)
	x := 0
	active := v.workspace.ActiveIndex()
	for i, doc := range v.workspace.Documents() {
		style := v.style
		if i == active {
			style = style.Reverse(true)
		}
		x = v.drawText(x, 0, " "+doc.Name+" ", style)
		x = v.drawText(x, 0, " ", v.style)
	}
}

func (v *Viewer) drawCode(doc *document.Document) {
	vp := v.views[doc]
	height := v.codeHeight()
	v.applyScroll(doc, vp, height)
	v.cache.Update(doc, vp.offsetY, height)

	lines := doc.LineCount()
	gutterWidth := 0
	if v.showLineNumbers {
		gutterWidth = runewidth.StringWidth(layout.GutterLabel(lines, lines))
	}

	exp := layout.NewExpander(v.cfg.TabWidth)
	for row := range height {
		lineIndex := vp.offsetY + row
		y := tabBarHeight + row
		line, ok := v.cache.Get(lineIndex)
		if !ok && lineIndex > 0 {
			break
		}
		if v.showLineNumbers {
			v.drawText(0, y, layout.GutterLabel(lineIndex+1, lines), v.highlighter.Gutter())
		}
		if ok {
			v.drawLine(y, gutterWidth, vp.offsetX, line, &doc.Search, exp)
		}
	}
}

// drawLine draws the tokens of one row with tabs expanded, starting at
// column left and skipping the first offsetX display columns.
func (v *Viewer) drawLine(y, left, offsetX int, line highlightedLine, s *document.SearchState, exp *layout.Expander) {
	exp.Reset()
	current, hasCurrent := s.CurrentOffset()
	qlen := len(s.Query)
	for _, tok := range line.tokens {
		for i, r := range tok.Text {
			off := line.start + tok.Start + i
			var match, active bool
			if s.Active && qlen > 0 {
				active = hasCurrent && off >= current && off < current+qlen
				match = active || inMatch(s.Matches, off, qlen)
			}
			style := v.highlighter.Style(tok.Category, match, active)

			col := exp.Column()
			for _, c := range exp.Expand(string(r)) {
				width := runewidth.RuneWidth(c)
				if x := left + col - offsetX; width > 0 && col >= offsetX && x < v.w {
					v.screen.SetContent(x, y, c, nil, style)
				}
				col += width
			}
		}
	}
}

// inMatch reports whether byte offset off falls inside one of the sorted
// matches of length n.
func inMatch(matches []int, off, n int) bool {
	i, _ := slices.BinarySearch(matches, off-n+1)
	return i < len(matches) && matches[i] <= off
}

func (v *Viewer) drawSearchBar(doc *document.Document) {
	y := v.h - statusHeight - 1
	v.fillRow(y, v.style)
	s := &doc.Search
	text := "Find: " + s.Query
	if s.CaseSensitive {
		text += "  [Aa]"
	}
	switch {
	case s.Query == "":
	case len(s.Matches) == 0:
		text += "  No matches"
	default:
		text += fmt.Sprintf("  %d/%d", s.Current+1, len(s.Matches))
	}
	v.drawText(0, y, text, v.style)
}

// drawStatusLine draws the prompt, a pending status message, or the
// position and language of the active document.
func (v *Viewer) drawStatusLine() {
	y := v.h - 1
	v.fillRow(y, v.style)

	if v.mode != modeView {
		prompt := prompts[v.mode] + string(v.input)
		v.drawText(0, y, prompt, v.style)
		v.screen.ShowCursor(runewidth.StringWidth(prompt), y)
		return
	}
	v.screen.HideCursor()

	if v.status != "" {
		v.drawText(0, y, v.status, v.style)
		v.status = "" // Clear status after drawing
		return
	}

	doc := v.workspace.Active()
	if doc == nil {
		return
	}
	info := fmt.Sprintf("Line %d / %d    %s", v.views[doc].offsetY+1, doc.LineCount(), v.languageLabel(doc))
	if !doc.ShowComments {
		info += "    Comments hidden"
	}
	v.drawText(0, y, info, v.style)
}

// languageLabel names the language of doc. Files without scanner rules get
// a guess from their name and content.
func (v *Viewer) languageLabel(doc *document.Document) string {
	label := "Language: " + doc.Language.String()
	if doc.Language != syntax.Unknown {
		return label
	}
	hint, ok := v.hints[doc]
	if !ok {
		peek := doc.Content[:min(len(doc.Content), enryPeek)]
		hint = enry.GetLanguage(doc.Name, []byte(peek))
		v.hints[doc] = hint
	}
	if hint != "" {
		label += " (" + hint + "?)"
	}
	return label
}
