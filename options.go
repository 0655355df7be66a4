package nativehost

import (
	"github.com/gogpu/nativehost/surface"
	"github.com/gogpu/nativehost/ui"
)

// Bridge performs native platform actions by name. Implementations log
// and swallow their own failures; *bridge.Bridge is one.
type Bridge interface {
	Invoke(action string)
}

// Store persists program snapshots. Load returns store.ErrNotFound when
// nothing was saved under key; *store.SQLite is one.
type Store interface {
	Save(key string, data []byte) error
	Load(key string) ([]byte, error)
}

// KeyboardPolicy decides how keyboard commands emitted by one ui update
// reach the Bridge.
type KeyboardPolicy uint8

const (
	// KeyboardOrdered forwards every show and hide request in the order
	// the program emitted them. When focus moves between two fields in one
	// update, the hide for the old field precedes the show for the new.
	KeyboardOrdered KeyboardPolicy = iota

	// KeyboardLastWins forwards only the last keyboard request of each
	// update.
	KeyboardLastWins
)

func (p KeyboardPolicy) String() string {
	if p == KeyboardLastWins {
		return "LastWins"
	}
	return "Ordered"
}

// Option configures a Host.
//
// Example:
//
//	host := nativehost.New(newProgram,
//		nativehost.WithBridge(br),
//		nativehost.WithKeyboardPolicy(nativehost.KeyboardLastWins))
type Option func(*options)

type options struct {
	backend     surface.Backend
	surface     surface.Config
	bridge      Bridge
	clipboard   ui.Clipboard
	store       Store
	snapshotKey string
	keyboard    KeyboardPolicy
	hostOpts    []ui.HostOption
	newRenderer rendererFactory
}

func defaultOptions() options {
	return options{
		surface:     surface.DefaultConfig(),
		snapshotKey: "program",
		keyboard:    KeyboardOrdered,
		newRenderer: newCompositor,
	}
}

// WithBackend sets the GPU backend. The default is surface.NewHALBackend().
func WithBackend(b surface.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithSurfaceConfig replaces the surface configuration template. Width
// and Height are ignored; the window decides them.
func WithSurfaceConfig(cfg surface.Config) Option {
	return func(o *options) { o.surface = cfg }
}

// WithBridge sets the target of native actions. Without one, actions are
// logged and dropped.
func WithBridge(b Bridge) Option {
	return func(o *options) { o.bridge = b }
}

// WithClipboard sets the clipboard offered to text inputs.
func WithClipboard(c ui.Clipboard) Option {
	return func(o *options) { o.clipboard = c }
}

// WithStore enables snapshots: programs implementing ui.Snapshotter are
// saved under key on suspend and exit and restored on a cold start.
func WithStore(s Store, key string) Option {
	return func(o *options) {
		o.store = s
		if key != "" {
			o.snapshotKey = key
		}
	}
}

// WithKeyboardPolicy sets how keyboard commands are forwarded.
func WithKeyboardPolicy(p KeyboardPolicy) Option {
	return func(o *options) { o.keyboard = p }
}

// WithTheme sets the widget theme.
func WithTheme(t ui.Theme) Option {
	return func(o *options) { o.hostOpts = append(o.hostOpts, ui.WithTheme(t)) }
}

// withRenderer replaces the frame renderer; used by tests.
func withRenderer(f rendererFactory) Option {
	return func(o *options) { o.newRenderer = f }
}
