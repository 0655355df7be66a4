package nativehost

import (
	"testing"

	"github.com/gogpu/nativehost/surface"
	"github.com/gogpu/nativehost/ui"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.surface.PresentMode != surface.PresentModeAutoVsync || o.surface.MaxFrameLatency != 2 {
		t.Errorf("surface config = %+v", o.surface)
	}
	if o.snapshotKey != "program" {
		t.Errorf("snapshot key = %q", o.snapshotKey)
	}
	if o.keyboard != KeyboardOrdered {
		t.Errorf("keyboard policy = %v", o.keyboard)
	}
	if o.newRenderer == nil {
		t.Error("no renderer factory")
	}
}

func TestOptionsApply(t *testing.T) {
	br := &fakeBridge{}
	st := memStore{}
	cfg := surface.DefaultConfig()
	cfg.PresentMode = surface.PresentModeMailbox

	h := New(newForm,
		WithBridge(br),
		WithStore(st, "form"),
		WithSurfaceConfig(cfg),
		WithKeyboardPolicy(KeyboardLastWins),
		WithTheme(ui.DefaultTheme()),
	)

	if h.opts.bridge != br {
		t.Error("bridge not set")
	}
	if h.opts.snapshotKey != "form" {
		t.Errorf("snapshot key = %q", h.opts.snapshotKey)
	}
	if h.opts.surface.PresentMode != surface.PresentModeMailbox {
		t.Errorf("present mode = %v", h.opts.surface.PresentMode)
	}
	if h.opts.keyboard != KeyboardLastWins {
		t.Errorf("keyboard = %v", h.opts.keyboard)
	}
	if len(h.opts.hostOpts) != 1 {
		t.Errorf("host options = %d", len(h.opts.hostOpts))
	}
	if _, ok := h.opts.backend.(*surface.HALBackend); !ok {
		t.Errorf("default backend = %T", h.opts.backend)
	}
	if h.State() != Uninitialized {
		t.Errorf("state = %v", h.State())
	}
}

func TestWithStoreKeepsDefaultKey(t *testing.T) {
	h := New(newForm, WithStore(memStore{}, ""))
	if h.opts.snapshotKey != "program" {
		t.Errorf("snapshot key = %q", h.opts.snapshotKey)
	}
}

func TestKeyboardPolicyString(t *testing.T) {
	if KeyboardOrdered.String() != "Ordered" || KeyboardLastWins.String() != "LastWins" {
		t.Errorf("names = %q, %q", KeyboardOrdered, KeyboardLastWins)
	}
}
