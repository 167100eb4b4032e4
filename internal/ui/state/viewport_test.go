package state

import "testing"

func TestEnsureVisibleScrollsDown(t *testing.T) {
	var v Viewport
	v.EnsureVisible(7, 3, 10)
	if v.Offset != 5 {
		t.Fatalf("expected offset 5, got %d", v.Offset)
	}
	if !v.Visible(7, 3) || v.Visible(4, 3) {
		t.Fatalf("unexpected visibility for offset %d", v.Offset)
	}
}

func TestEnsureVisibleScrollsUp(t *testing.T) {
	v := Viewport{Offset: 6}
	v.EnsureVisible(2, 3, 10)
	if v.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", v.Offset)
	}
}

func TestEnsureVisibleClampsToContent(t *testing.T) {
	v := Viewport{Offset: 9}
	v.EnsureVisible(8, 4, 9)
	if v.Offset != 5 {
		t.Fatalf("expected offset 5, got %d", v.Offset)
	}
	v.EnsureVisible(0, 0, 9)
	if v.Offset != 0 {
		t.Fatalf("expected reset without a window, got %d", v.Offset)
	}
}

func TestWindow(t *testing.T) {
	v := Viewport{Offset: 4}
	if start, end := v.Window(3, 10); start != 4 || end != 7 {
		t.Fatalf("unexpected window [%d,%d)", start, end)
	}
	if start, end := v.Window(3, 2); start != 0 || end != 2 {
		t.Fatalf("short content should show everything, got [%d,%d)", start, end)
	}
	if start, end := (Viewport{Offset: 9}).Window(3, 10); start != 7 || end != 10 {
		t.Fatalf("window should clamp to the end, got [%d,%d)", start, end)
	}
}
