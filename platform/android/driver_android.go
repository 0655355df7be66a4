//go:build android

package android

/*
#cgo LDFLAGS: -landroid -llog

#include <android/configuration.h>
#include <android/input.h>
#include <android/log.h>
#include <android/looper.h>
#include <android/native_activity.h>
#include <android/native_window.h>
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"github.com/gogpu/nativehost/bridge"
	"github.com/gogpu/nativehost/internal/logging"
	"github.com/gogpu/nativehost/platform"
)

// Looper identifiers.
const (
	identWake  = 1
	identInput = 2
)

var (
	mainFn     func(*Driver)
	driverOnce sync.Once
	theDriver  *Driver
)

// Main registers run as the program's entry point. It is called on a
// dedicated thread when the activity is first created. Call Main from an
// init function.
func Main(run func(d *Driver)) {
	mainFn = run
}

// Driver is the platform.Driver for a NativeActivity. The activity
// callbacks feed it from the UI thread; WaitEvent runs on the thread that
// called run.
type Driver struct {
	q    *queue
	pipe *wakePipe

	ready  chan struct{}
	looper *C.ALooper

	mu    sync.Mutex
	act   *C.ANativeActivity
	win   *C.ANativeWindow
	input *C.AInputQueue
	scale float64

	// Dispatch thread only.
	mods    platform.Modifiers
	buttons int32
}

var _ platform.Driver = (*Driver)(nil)

func newDriver(act *C.ANativeActivity) (*Driver, error) {
	pipe, err := newWakePipe()
	if err != nil {
		return nil, err
	}
	d := &Driver{pipe: pipe, ready: make(chan struct{}), act: act, scale: 1}
	d.q = newQueue(pipe.wake)
	d.scale = density(act)
	return d, nil
}

// prepare creates the looper of the calling thread and registers the wake
// pipe with it.
func (d *Driver) prepare() {
	d.looper = C.ALooper_prepare(C.ALOOPER_PREPARE_ALLOW_NON_CALLBACKS)
	C.ALooper_addFd(d.looper, C.int(d.pipe.fd()), identWake, C.ALOOPER_EVENT_INPUT, nil, nil)
	close(d.ready)
}

// WaitEvent implements platform.Driver.
func (d *Driver) WaitEvent() (platform.Event, error) {
	for {
		ev, ok, closed := d.q.pop()
		if ok {
			return ev, nil
		}
		if closed {
			return nil, platform.ErrDriverClosed
		}
		switch ident := C.ALooper_pollOnce(-1, nil, nil, nil); ident {
		case identWake:
			d.pipe.drain()
			if ev, ok, _ := d.q.pop(); ok {
				return ev, nil
			}
			return nil, nil
		case identInput:
			d.processInput()
		case C.ALOOPER_POLL_ERROR:
			return nil, errors.New("android: looper poll failed")
		}
	}
}

// Wake implements platform.Driver.
func (d *Driver) Wake() { d.pipe.wake() }

// CreateWindow implements platform.Driver.
func (d *Driver) CreateWindow() (platform.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.win == nil {
		return nil, platform.ErrNoWindow
	}
	return &window{d: d, win: d.win}, nil
}

// BridgeContext returns the Java VM and activity object of the current
// activity, for bridge.New.
func (d *Driver) BridgeContext() (bridge.Context, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.act == nil {
		return bridge.Context{}, bridge.ErrNoContext
	}
	return bridge.Context{
		VM:       uintptr(unsafe.Pointer(d.act.vm)),
		Activity: uintptr(d.act.clazz),
	}, nil
}

// DataDir returns the activity's internal data directory.
func (d *Driver) DataDir() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.act == nil || d.act.internalDataPath == nil {
		return ""
	}
	return C.GoString(d.act.internalDataPath)
}

func (d *Driver) scaleFactor() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scale
}

func (d *Driver) processInput() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.input == nil {
		return
	}
	var ev *C.AInputEvent
	for C.AInputQueue_getEvent(d.input, &ev) >= 0 {
		if C.AInputQueue_preDispatchEvent(d.input, ev) != 0 {
			continue
		}
		handled := d.translate(ev)
		C.AInputQueue_finishEvent(d.input, ev, boolInt(handled))
	}
}

func (d *Driver) translate(ev *C.AInputEvent) bool {
	switch C.AInputEvent_getType(ev) {
	case C.AINPUT_EVENT_TYPE_KEY:
		k := KeyEvent{
			Action: int32(C.AKeyEvent_getAction(ev)),
			Code:   int32(C.AKeyEvent_getKeyCode(ev)),
			Meta:   int32(C.AKeyEvent_getMetaState(ev)),
			Repeat: int32(C.AKeyEvent_getRepeatCount(ev)),
		}
		for _, e := range TranslateKey(k, d.mods) {
			d.q.push(e)
		}
		d.mods = Modifiers(k.Meta)
		// Let the system handle back navigation.
		return k.Code != keycodeBack
	case C.AINPUT_EVENT_TYPE_MOTION:
		n := int(C.AMotionEvent_getPointerCount(ev))
		m := MotionEvent{
			Action:   int32(C.AMotionEvent_getAction(ev)),
			Source:   int32(C.AInputEvent_getSource(ev)),
			Buttons:  int32(C.AMotionEvent_getButtonState(ev)),
			Pointers: make([]Pointer, n),
			ScrollX:  float64(C.AMotionEvent_getAxisValue(ev, C.AMOTION_EVENT_AXIS_HSCROLL, 0)),
			ScrollY:  float64(C.AMotionEvent_getAxisValue(ev, C.AMOTION_EVENT_AXIS_VSCROLL, 0)),
		}
		for i := range m.Pointers {
			m.Pointers[i] = Pointer{
				ID: int32(C.AMotionEvent_getPointerId(ev, C.size_t(i))),
				X:  float64(C.AMotionEvent_getX(ev, C.size_t(i))),
				Y:  float64(C.AMotionEvent_getY(ev, C.size_t(i))),
			}
		}
		for _, e := range TranslateMotion(m, d.buttons) {
			d.q.push(e)
		}
		d.buttons = m.Buttons
		return true
	default:
		d.q.push(platform.DeviceEvent{
			Device: int32(C.AInputEvent_getDeviceId(ev)),
			Source: int32(C.AInputEvent_getSource(ev)),
		})
		return false
	}
}

func boolInt(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// density returns the activity's display density in device pixels per
// logical unit.
func density(act *C.ANativeActivity) float64 {
	cfg := C.AConfiguration_new()
	defer C.AConfiguration_delete(cfg)
	C.AConfiguration_fromAssetManager(cfg, act.assetManager)
	dpi := C.AConfiguration_getDensity(cfg)
	if dpi == C.ACONFIGURATION_DENSITY_DEFAULT || dpi == C.ACONFIGURATION_DENSITY_NONE {
		return 1
	}
	return float64(dpi) / C.ACONFIGURATION_DENSITY_MEDIUM
}

// window is a borrowed ANativeWindow. It must not be used after the
// Suspended event that follows its destruction.
type window struct {
	d   *Driver
	win *C.ANativeWindow
}

func (w *window) InnerSize() (uint32, uint32) {
	wd, ht := C.ANativeWindow_getWidth(w.win), C.ANativeWindow_getHeight(w.win)
	if wd < 0 || ht < 0 {
		return 0, 0
	}
	return uint32(wd), uint32(ht)
}

func (w *window) ScaleFactor() float64 { return w.d.scaleFactor() }

func (w *window) RequestRedraw() { w.d.q.requestRedraw() }

// SetCursor is a no-op: NativeActivity has no pointer icon API.
func (w *window) SetCursor(icon platform.CursorIcon) {}

// SetIMEAllowed records the request. The soft keyboard itself is shown
// through the activity.
func (w *window) SetIMEAllowed(allowed bool) {
	logging.L().Debug("android: ime allowed", "allowed", allowed)
}

func (w *window) NativeHandle() (uintptr, uintptr) {
	return 0, uintptr(unsafe.Pointer(w.win))
}

// Activity callbacks. They run on the Java UI thread.

//export onActivityCreate
func onActivityCreate(act *C.ANativeActivity) {
	driverOnce.Do(func() {
		d, err := newDriver(act)
		if err != nil {
			logging.L().Error("android: driver init failed", "err", err)
			return
		}
		theDriver = d
		go func() {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			d.prepare()
			if mainFn == nil {
				logging.L().Error("android: no entry point registered with android.Main")
			} else {
				mainFn(d)
			}
			d.q.close()
		}()
	})
	if d := theDriver; d != nil {
		d.mu.Lock()
		d.act = act
		d.mu.Unlock()
	}
	logging.L().Info("android: activity created")
}

//export onActivityStart
func onActivityStart(act *C.ANativeActivity) { logging.L().Debug("android: start") }

//export onActivityResume
func onActivityResume(act *C.ANativeActivity) { logging.L().Debug("android: resume") }

//export onActivityPause
func onActivityPause(act *C.ANativeActivity) { logging.L().Debug("android: pause") }

//export onActivityStop
func onActivityStop(act *C.ANativeActivity) { logging.L().Debug("android: stop") }

//export onActivityDestroy
func onActivityDestroy(act *C.ANativeActivity) {
	d := theDriver
	if d == nil {
		return
	}
	<-d.q.pushSync(platform.CloseRequested{})
	d.mu.Lock()
	if d.act == act {
		d.act = nil
	}
	d.mu.Unlock()
}

//export onWindowFocusChanged
func onWindowFocusChanged(act *C.ANativeActivity, focused C.int) {
	if d := theDriver; d != nil {
		d.q.push(platform.Focused{Focused: focused != 0})
	}
}

//export onNativeWindowCreated
func onNativeWindowCreated(act *C.ANativeActivity, win *C.ANativeWindow) {
	d := theDriver
	if d == nil {
		return
	}
	C.ANativeWindow_acquire(win)
	d.mu.Lock()
	d.win = win
	d.mu.Unlock()
	d.q.push(platform.Resumed{})
}

//export onNativeWindowResized
func onNativeWindowResized(act *C.ANativeActivity, win *C.ANativeWindow) {
	d := theDriver
	if d == nil {
		return
	}
	w, h := C.ANativeWindow_getWidth(win), C.ANativeWindow_getHeight(win)
	if w < 0 || h < 0 {
		return
	}
	d.q.push(platform.Resized{Width: uint32(w), Height: uint32(h)})
}

//export onNativeWindowRedrawNeeded
func onNativeWindowRedrawNeeded(act *C.ANativeActivity, win *C.ANativeWindow) {
	if d := theDriver; d != nil {
		d.q.requestRedraw()
	}
}

//export onNativeWindowDestroyed
func onNativeWindowDestroyed(act *C.ANativeActivity, win *C.ANativeWindow) {
	d := theDriver
	if d == nil {
		return
	}
	// The window stays valid until this callback returns, so wait for the
	// handler to drop its surface.
	<-d.q.pushSync(platform.Suspended{})
	d.mu.Lock()
	if d.win == win {
		d.win = nil
	}
	d.mu.Unlock()
	C.ANativeWindow_release(win)
}

//export onInputQueueCreated
func onInputQueueCreated(act *C.ANativeActivity, q *C.AInputQueue) {
	d := theDriver
	if d == nil {
		return
	}
	<-d.ready
	d.mu.Lock()
	d.input = q
	d.mu.Unlock()
	C.AInputQueue_attachLooper(q, d.looper, identInput, nil, nil)
}

//export onInputQueueDestroyed
func onInputQueueDestroyed(act *C.ANativeActivity, q *C.AInputQueue) {
	d := theDriver
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.input == q {
		d.input = nil
	}
	d.mu.Unlock()
	C.AInputQueue_detachLooper(q)
}

//export onConfigurationChanged
func onConfigurationChanged(act *C.ANativeActivity) {
	d := theDriver
	if d == nil {
		return
	}
	scale := density(act)
	d.mu.Lock()
	changed := scale != d.scale
	d.scale = scale
	d.mu.Unlock()
	if changed {
		d.q.push(platform.ScaleFactorChanged{Scale: scale})
	}
}

//export onLowMemory
func onLowMemory(act *C.ANativeActivity) {
	logging.L().Warn("android: low memory")
}

// NewLogcatHandler returns a slog.Handler writing to logcat under tag.
// A nil level means slog.LevelInfo.
func NewLogcatHandler(tag string, level slog.Leveler) slog.Handler {
	return newLogcatHandler(tag, level, logcatWrite)
}

func logcatWrite(prio int, tag, msg string) {
	ctag := C.CString(tag)
	defer C.free(unsafe.Pointer(ctag))
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	C.__android_log_write(C.int(prio), ctag, cmsg)
}
