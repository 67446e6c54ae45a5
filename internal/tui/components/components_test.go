package components

import (
	"strings"
	"testing"
)

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()

	if s.StatusDone == "" {
		t.Error("StatusDone is empty")
	}
	if s.StatusRunning == "" {
		t.Error("StatusRunning is empty")
	}
	if s.StatusPending == "" {
		t.Error("StatusPending is empty")
	}
	if s.StatusFailed == "" {
		t.Error("StatusFailed is empty")
	}
}

func TestRenderBanner(t *testing.T) {
	s := DefaultStyles()
	out := RenderBanner(s)
	if out == "" {
		t.Error("RenderBanner returned empty string")
	}
	if len(out) < 50 {
		t.Error("RenderBanner output seems too short")
	}
	if !strings.Contains(out, "Agent11") {
		t.Errorf("banner missing tagline: %q", out)
	}
}

func TestNewSpinner(t *testing.T) {
	s := DefaultStyles()
	sp := NewSpinner(s)
	// Spinner should produce a non-empty frame.
	if sp.View() == "" {
		t.Error("spinner View() is empty")
	}
}

func TestRenderBar(t *testing.T) {
	s := DefaultStyles()

	tests := []struct {
		fraction float64
		want     string
	}{
		{0, "  0%"},
		{0.5, " 50%"},
		{1, "100%"},
		{1.7, "100%"},
		{-1, "  0%"},
	}
	for _, tt := range tests {
		out := RenderBar(s, tt.fraction, 20)
		if !strings.HasSuffix(out, tt.want) {
			t.Errorf("RenderBar(%v) = %q, want suffix %q", tt.fraction, out, tt.want)
		}
	}
}
