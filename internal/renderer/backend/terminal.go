package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/boxselect/internal/input/mouse"
	"github.com/dshills/boxselect/internal/renderer/core"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.EnableFocus()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{
		Rune:  mainc,
		Width: core.RuneWidth(mainc),
		Style: convertTcellStyle(style),
	}
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()
	for y := max(0, rect.Top); y < rect.Bottom && y < height; y++ {
		for x := max(0, rect.Left); x < rect.Right && x < width; x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent is not guarded by mu; tcell's event queue is safe for
// concurrent use and holding the lock here would block drawing.
func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

func (t *Terminal) Wake() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableMouse(tcell.MouseMotionEvents)
}

func (t *Terminal) DisableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisableMouse()
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background))

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

func convertColor(c core.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()

	s := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
	}
	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= core.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= core.AttrDim
	}
	if attrs&tcell.AttrUnderline != 0 {
		s.Attributes |= core.AttrUnderline
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= core.AttrReverse
	}
	return s
}

func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts tcell events to our Event type. A nil event means
// the screen was finalized.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:    EventMouse,
			MouseX:  x,
			MouseY:  y,
			Buttons: convertButtons(e.Buttons()),
			Mod:     convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventWake}

	default:
		return Event{Type: EventNone}
	}
}

func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlL:
		return KeyCtrlL
	default:
		return KeyNone
	}
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	return result
}

// convertButtons maps a tcell button mask to the single button the mouse
// tracker follows. The primary button wins when several are held.
func convertButtons(b tcell.ButtonMask) mouse.Button {
	switch {
	case b&tcell.Button1 != 0:
		return mouse.ButtonLeft
	case b&tcell.Button3 != 0:
		return mouse.ButtonMiddle
	case b&tcell.Button2 != 0:
		return mouse.ButtonRight
	case b&tcell.WheelUp != 0:
		return mouse.ButtonScrollUp
	case b&tcell.WheelDown != 0:
		return mouse.ButtonScrollDown
	default:
		return mouse.ButtonNone
	}
}
