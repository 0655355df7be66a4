// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
)

// PresentMode selects how frames are queued for display.
type PresentMode uint8

const (
	// PresentModeAutoVsync picks FifoRelaxed if supported, else Fifo.
	PresentModeAutoVsync PresentMode = iota
	// PresentModeAutoNoVsync picks Immediate, then Mailbox, then Fifo.
	PresentModeAutoNoVsync
	PresentModeFifo
	PresentModeFifoRelaxed
	PresentModeMailbox
	PresentModeImmediate
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeAutoVsync:
		return "auto-vsync"
	case PresentModeAutoNoVsync:
		return "auto-no-vsync"
	case PresentModeFifo:
		return "fifo"
	case PresentModeFifoRelaxed:
		return "fifo-relaxed"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", uint8(m))
	}
}

// AlphaMode selects how the compositor treats the surface alpha channel.
type AlphaMode uint8

const (
	// AlphaModeAuto picks Opaque if supported, else Inherit, else the
	// first supported mode.
	AlphaModeAuto AlphaMode = iota
	AlphaModeOpaque
	AlphaModePremultiplied
	AlphaModeUnpremultiplied
	AlphaModeInherit
)

func (m AlphaMode) String() string {
	switch m {
	case AlphaModeAuto:
		return "auto"
	case AlphaModeOpaque:
		return "opaque"
	case AlphaModePremultiplied:
		return "premultiplied"
	case AlphaModeUnpremultiplied:
		return "unpremultiplied"
	case AlphaModeInherit:
		return "inherit"
	default:
		return fmt.Sprintf("AlphaMode(%d)", uint8(m))
	}
}

// Config is a surface configuration. Width and Height are physical pixels.
type Config struct {
	Width, Height   uint32
	Format          gputypes.TextureFormat
	Usage           gputypes.TextureUsage
	PresentMode     PresentMode
	AlphaMode       AlphaMode
	ViewFormats     []gputypes.TextureFormat
	MaxFrameLatency uint32
}

// DefaultConfig returns the configuration used for the window surface:
// render-attachment usage, automatic vsync, automatic alpha, no extra view
// formats and at most two frames in flight. Format is left undefined and
// negotiated with the surface.
func DefaultConfig() Config {
	return Config{
		Format:          gputypes.TextureFormatUndefined,
		Usage:           gputypes.TextureUsageRenderAttachment,
		PresentMode:     PresentModeAutoVsync,
		AlphaMode:       AlphaModeAuto,
		MaxFrameLatency: 2,
	}
}

// Capabilities lists what a surface supports on the chosen adapter.
// PresentModes and AlphaModes hold concrete modes only.
type Capabilities struct {
	Formats      []gputypes.TextureFormat
	PresentModes []PresentMode
	AlphaModes   []AlphaMode
}

// IsSRGB reports whether f is an sRGB-encoded color format.
func IsSRGB(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// ChooseFormat returns the first sRGB format in formats, else the first
// format, else TextureFormatUndefined.
func ChooseFormat(formats []gputypes.TextureFormat) gputypes.TextureFormat {
	for _, f := range formats {
		if IsSRGB(f) {
			return f
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return gputypes.TextureFormatUndefined
}

// ResolvePresentMode maps want onto a mode in supported. Fifo is always
// assumed available.
func ResolvePresentMode(want PresentMode, supported []PresentMode) PresentMode {
	var candidates []PresentMode
	switch want {
	case PresentModeAutoVsync:
		candidates = []PresentMode{PresentModeFifoRelaxed, PresentModeFifo}
	case PresentModeAutoNoVsync:
		candidates = []PresentMode{PresentModeImmediate, PresentModeMailbox, PresentModeFifo}
	default:
		candidates = []PresentMode{want}
	}
	for _, m := range candidates {
		if slices.Contains(supported, m) {
			return m
		}
	}
	return PresentModeFifo
}

// ResolveAlphaMode maps want onto a mode in supported.
func ResolveAlphaMode(want AlphaMode, supported []AlphaMode) AlphaMode {
	if want != AlphaModeAuto {
		if slices.Contains(supported, want) || len(supported) == 0 {
			return want
		}
	}
	for _, m := range []AlphaMode{AlphaModeOpaque, AlphaModeInherit} {
		if slices.Contains(supported, m) {
			return m
		}
	}
	if len(supported) > 0 {
		return supported[0]
	}
	return AlphaModeOpaque
}

// Resolve returns cfg with the format negotiated and the automatic modes
// replaced by concrete ones supported by caps.
func Resolve(cfg Config, caps Capabilities) Config {
	if cfg.Format == gputypes.TextureFormatUndefined {
		cfg.Format = ChooseFormat(caps.Formats)
	}
	cfg.PresentMode = ResolvePresentMode(cfg.PresentMode, caps.PresentModes)
	cfg.AlphaMode = ResolveAlphaMode(cfg.AlphaMode, caps.AlphaModes)
	if cfg.MaxFrameLatency == 0 {
		cfg.MaxFrameLatency = 2
	}
	return cfg
}
