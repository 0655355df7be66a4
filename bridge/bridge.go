// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package bridge calls out from UI logic to the host activity.
//
// Two one-way paths exist: Invoke runs a zero-argument method on the
// activity object by name, and ReadText/WriteText exchange a single string
// with the activity's clipboard helpers. Every failure is logged and
// swallowed; nothing here returns an error to the render loop.
package bridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/nativehost/internal/logging"
)

// Activity method names used for text exchange.
const (
	ReadTextMethod  = "readClipboard"
	WriteTextMethod = "writeClipboard"
)

var (
	// ErrUnsupported is returned by callers on platforms without a host
	// runtime.
	ErrUnsupported = errors.New("bridge: host runtime not available on this platform")

	// ErrNoContext is returned when the resolver yields an empty context.
	ErrNoContext = errors.New("bridge: no runtime context")
)

// Context identifies the host runtime: the Java VM and the activity
// object, as raw pointers owned by the platform.
type Context struct {
	VM       uintptr
	Activity uintptr
}

// Valid reports whether both handles are set.
func (c Context) Valid() bool { return c.VM != 0 && c.Activity != 0 }

// Resolver produces the runtime context. A Bridge calls it at most once.
type Resolver func() (Context, error)

// StaticResolver returns a Resolver for an already known context.
func StaticResolver(ctx Context) Resolver {
	return func() (Context, error) { return ctx, nil }
}

// Caller attaches to the runtime and performs a single method call on the
// activity. Implementations report both attach and call failures as
// errors.
type Caller interface {
	// CallVoid calls method with signature ()V.
	CallVoid(ctx Context, method string) error
	// CallString calls method with signature ()Ljava/lang/String;.
	CallString(ctx Context, method string) (string, error)
	// CallVoidString calls method with signature (Ljava/lang/String;)V.
	CallVoidString(ctx Context, method, arg string) error
}

// Bridge is the native call-out used by the coordinator and the
// clipboard. It is safe for use from one goroutine at a time.
type Bridge struct {
	resolve Resolver
	caller  Caller

	once sync.Once
	ctx  Context
	err  error
}

// New returns a bridge that resolves its context lazily through resolve
// and performs calls through caller.
func New(resolve Resolver, caller Caller) *Bridge {
	return &Bridge{resolve: resolve, caller: caller}
}

func (b *Bridge) context() (Context, error) {
	b.once.Do(func() {
		if b.resolve == nil {
			b.err = ErrNoContext
			return
		}
		b.ctx, b.err = b.resolve()
		if b.err == nil && !b.ctx.Valid() {
			b.err = ErrNoContext
		}
	})
	return b.ctx, b.err
}

// call runs f with the resolved context, turning a panic inside the
// caller into an error.
func (b *Bridge) call(f func(Context) error) (err error) {
	if b.caller == nil {
		return ErrUnsupported
	}
	ctx, err := b.context()
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bridge: caller panicked: %v", r)
		}
	}()
	return f(ctx)
}

// Invoke calls the zero-argument activity method named action. Failures
// are logged.
func (b *Bridge) Invoke(action string) {
	logging.L().Debug("bridge: invoke", "method", action)
	err := b.call(func(ctx Context) error {
		return b.caller.CallVoid(ctx, action)
	})
	if err != nil {
		logging.L().Error("bridge: invoke failed", "method", action, "err", err)
	}
}

// ReadText returns the activity's clipboard text. ok is false on failure.
func (b *Bridge) ReadText() (text string, ok bool) {
	logging.L().Debug("bridge: read text")
	err := b.call(func(ctx Context) error {
		var err error
		text, err = b.caller.CallString(ctx, ReadTextMethod)
		return err
	})
	if err != nil {
		logging.L().Error("bridge: read text failed", "err", err)
		return "", false
	}
	return text, true
}

// WriteText hands s to the activity's clipboard. Failures are logged.
func (b *Bridge) WriteText(s string) {
	logging.L().Debug("bridge: write text", "len", len(s))
	err := b.call(func(ctx Context) error {
		return b.caller.CallVoidString(ctx, WriteTextMethod, s)
	})
	if err != nil {
		logging.L().Error("bridge: write text failed", "err", err)
	}
}

// Clipboard adapts a Bridge to ui.Clipboard.
type Clipboard struct {
	b *Bridge
}

// NewClipboard returns a clipboard backed by b.
func NewClipboard(b *Bridge) Clipboard { return Clipboard{b: b} }

// Read implements ui.Clipboard.
func (c Clipboard) Read() (string, bool) { return c.b.ReadText() }

// Write implements ui.Clipboard.
func (c Clipboard) Write(s string) { c.b.WriteText(s) }
