package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/boxselect/internal/input/mouse"
	"github.com/dshills/boxselect/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorWhite))
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); !got.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFill(t *testing.T) {
	b := NewNullBackend(20, 10)
	b.Init()

	b.Fill(core.ScreenRect{Top: -2, Left: 18, Bottom: 2, Right: 40}, core.NewCell('.'))

	if got := b.Row(0); got != "                  .." {
		t.Errorf("Row(0) = %q", got)
	}
	if got := b.Row(2); got != "                    " {
		t.Errorf("Row(2) = %q, want blank", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(20, 10)
	b.Init()

	b.Wake()
	if ev := b.PollEvent(); ev.Type != EventWake {
		t.Errorf("PollEvent() type = %v, want EventWake", ev.Type)
	}

	b.Resize(30, 12)
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 30 || ev.Height != 12 {
		t.Errorf("PollEvent() = %+v, want resize 30x12", ev)
	}
	if w, h := b.Size(); w != 30 || h != 12 {
		t.Errorf("Size() = %d,%d, want 30,12", w, h)
	}

	b.Shutdown()
	if ev := b.PollEvent(); ev.Type != EventNone {
		t.Errorf("PollEvent() after Shutdown type = %v, want EventNone", ev.Type)
	}
	b.Shutdown()
}

func TestConvertButtons(t *testing.T) {
	tests := []struct {
		in   tcell.ButtonMask
		want mouse.Button
	}{
		{tcell.ButtonNone, mouse.ButtonNone},
		{tcell.Button1, mouse.ButtonLeft},
		{tcell.Button2, mouse.ButtonRight},
		{tcell.Button3, mouse.ButtonMiddle},
		{tcell.Button1 | tcell.Button2, mouse.ButtonLeft},
		{tcell.WheelUp, mouse.ButtonScrollUp},
		{tcell.WheelDown, mouse.ButtonScrollDown},
	}
	for _, tt := range tests {
		if got := convertButtons(tt.in); got != tt.want {
			t.Errorf("convertButtons(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvertEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventMouse(7, 3, tcell.Button1, tcell.ModShift))
	if ev.Type != EventMouse || ev.MouseX != 7 || ev.MouseY != 3 {
		t.Errorf("mouse event = %+v", ev)
	}
	if ev.Buttons != mouse.ButtonLeft || !ev.Mod.Has(ModShift) {
		t.Errorf("mouse event buttons/mod = %v/%v", ev.Buttons, ev.Mod)
	}

	ev = convertEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'q' {
		t.Errorf("key event = %+v", ev)
	}

	if ev := convertEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)); ev.Key != KeyCtrlC {
		t.Errorf("ctrl-c key = %v, want KeyCtrlC", ev.Key)
	}
	if ev := convertEvent(tcell.NewEventInterrupt(nil)); ev.Type != EventWake {
		t.Errorf("interrupt type = %v, want EventWake", ev.Type)
	}
	if ev := convertEvent(nil); ev.Type != EventNone {
		t.Errorf("nil event type = %v, want EventNone", ev.Type)
	}
}

func TestConvertStyleRoundTrip(t *testing.T) {
	s := core.NewStyle(core.ColorFromRGB(10, 20, 30), core.ColorDefault).Bold()
	got := convertTcellStyle(convertStyle(s))
	if !got.Equals(s) {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
}
