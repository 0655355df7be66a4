package nativehost

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/nativehost/controls"
	"github.com/gogpu/nativehost/overlay"
	"github.com/gogpu/nativehost/platform"
	"github.com/gogpu/nativehost/store"
	"github.com/gogpu/nativehost/surface"
	"github.com/gogpu/nativehost/ui"
	"github.com/gogpu/nativehost/viewport"
)

// fakeGPU is a Backend whose contexts record every presenter call in ops.
type fakeGPU struct {
	caps     surface.Capabilities
	openErr  error
	acquire  []error // consumed one per AcquireFrame
	ops      []string
	configs  []surface.Config
	opened   int
	released int
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{caps: surface.Capabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb},
		PresentModes: []surface.PresentMode{surface.PresentModeFifo, surface.PresentModeMailbox},
		AlphaModes:   []surface.AlphaMode{surface.AlphaModeOpaque},
	}}
}

func (g *fakeGPU) Open(surface.Target) (surface.Context, error) {
	if g.openErr != nil {
		return nil, g.openErr
	}
	g.opened++
	return &fakeContext{g: g}, nil
}

// configures returns the number of Configure calls.
func (g *fakeGPU) configures() int { return len(g.configs) }

type fakeContext struct {
	g   *fakeGPU
	cfg surface.Config
}

func (c *fakeContext) Capabilities() surface.Capabilities { return c.g.caps }

func (c *fakeContext) Configure(cfg surface.Config) error {
	c.cfg = cfg
	c.g.configs = append(c.g.configs, cfg)
	c.g.ops = append(c.g.ops, fmt.Sprintf("configure %dx%d", cfg.Width, cfg.Height))
	return nil
}

func (c *fakeContext) Unconfigure() { c.g.ops = append(c.g.ops, "unconfigure") }

func (c *fakeContext) AcquireFrame() (*surface.Frame, error) {
	c.g.ops = append(c.g.ops, "acquire")
	if len(c.g.acquire) > 0 {
		err := c.g.acquire[0]
		c.g.acquire = c.g.acquire[1:]
		if err != nil {
			return nil, err
		}
	}
	return &surface.Frame{Width: c.cfg.Width, Height: c.cfg.Height}, nil
}

func (c *fakeContext) Present(*surface.Frame) error {
	c.g.ops = append(c.g.ops, "present")
	return nil
}

func (c *fakeContext) DiscardFrame(*surface.Frame) { c.g.ops = append(c.g.ops, "discard") }

func (c *fakeContext) Release() { c.g.released++ }

// fakeRenderer records what each frame was asked to show.
type fakeRenderer struct {
	frames      []viewport.Viewport
	backgrounds []ui.Color
	err         error
	closed      int
}

func (r *fakeRenderer) Render(_ *surface.Frame, bg ui.Color, _ overlay.Drawable, vp viewport.Viewport) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, vp)
	r.backgrounds = append(r.backgrounds, bg)
	return nil
}

func (r *fakeRenderer) Close() { r.closed++ }

// fakeDriver replays scripted events. RequestRedraw on its window queues
// one RedrawRequested behind the script, coalesced.
type fakeDriver struct {
	events        []platform.Event
	win           *fakeWindow
	noWindow      bool
	redrawPending bool
	// step runs before each event is returned.
	step func(ev platform.Event)
}

func newFakeDriver(w, h uint32, scale float64, events ...platform.Event) *fakeDriver {
	d := &fakeDriver{events: events}
	d.win = &fakeWindow{d: d, w: w, h: h, scale: scale}
	return d
}

func (d *fakeDriver) WaitEvent() (platform.Event, error) {
	if len(d.events) == 0 {
		return nil, platform.ErrDriverClosed
	}
	ev := d.events[0]
	d.events = d.events[1:]
	if _, ok := ev.(platform.RedrawRequested); ok {
		d.redrawPending = false
	}
	if r, ok := ev.(platform.Resized); ok {
		d.win.w, d.win.h = r.Width, r.Height
	}
	if d.step != nil {
		d.step(ev)
	}
	return ev, nil
}

func (d *fakeDriver) Wake() {}

func (d *fakeDriver) CreateWindow() (platform.Window, error) {
	if d.noWindow {
		return nil, platform.ErrNoWindow
	}
	return d.win, nil
}

type fakeWindow struct {
	d        *fakeDriver
	w, h     uint32
	scale    float64
	redraws  int
	cursors  []platform.CursorIcon
	imeAllow bool
}

func (w *fakeWindow) InnerSize() (uint32, uint32) { return w.w, w.h }
func (w *fakeWindow) ScaleFactor() float64        { return w.scale }

func (w *fakeWindow) RequestRedraw() {
	w.redraws++
	if !w.d.redrawPending {
		w.d.redrawPending = true
		w.d.events = append(w.d.events, platform.RedrawRequested{})
	}
}

func (w *fakeWindow) SetCursor(icon platform.CursorIcon) { w.cursors = append(w.cursors, icon) }
func (w *fakeWindow) SetIMEAllowed(allowed bool)         { w.imeAllow = allowed }
func (w *fakeWindow) NativeHandle() (uintptr, uintptr)   { return 0, 1 }

type fakeBridge struct{ actions []string }

func (b *fakeBridge) Invoke(action string) { b.actions = append(b.actions, action) }

type memStore map[string][]byte

func (s memStore) Save(key string, data []byte) error {
	s[key] = append([]byte(nil), data...)
	return nil
}

func (s memStore) Load(key string) ([]byte, error) {
	data, ok := s[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

type formMsg struct {
	field   int
	focused bool
}

// formProgram has two text fields. At scale 1 in a 300-wide window they
// occupy y 10..47 and 57..94.
type formProgram struct {
	msgs []ui.Message
}

func (p *formProgram) Update(m ui.Message) ui.Command {
	p.msgs = append(p.msgs, m)
	if f, ok := m.(formMsg); ok {
		if f.focused {
			return ui.Action(ui.ShowKeyboard)
		}
		return ui.Action(ui.HideKeyboard)
	}
	return ui.None()
}

func (p *formProgram) View() ui.Element {
	field := func(i int) ui.Element {
		return ui.TextInput("", "", nil).
			OnFocus(func(f bool) ui.Message { return formMsg{i, f} })
	}
	return ui.Column(field(0), field(1)).Padding(10).Spacing(10)
}

func (p *formProgram) BackgroundColor() ui.Color { return ui.RGB(0, 0, 1) }

func tap(x, y float64) []platform.Event {
	return []platform.Event{
		platform.CursorMoved{X: x, Y: y},
		platform.MouseInput{Button: platform.ButtonLeft, State: platform.Pressed},
		platform.MouseInput{Button: platform.ButtonLeft, State: platform.Released},
	}
}

type testHost struct {
	*Host
	gpu  *fakeGPU
	rend *fakeRenderer
}

func newTestHost(newProgram func() ui.Program, opts ...Option) *testHost {
	th := &testHost{gpu: newFakeGPU(), rend: &fakeRenderer{}}
	opts = append([]Option{
		WithBackend(th.gpu),
		withRenderer(func(surface.Context, gputypes.TextureFormat) (renderer, error) { return th.rend, nil }),
	}, opts...)
	th.Host = New(newProgram, opts...)
	return th
}

func newForm() ui.Program { return &formProgram{} }

func TestStartupConfiguresBeforePresent(t *testing.T) {
	th := newTestHost(newForm)
	d := newFakeDriver(1080, 2280, 2.75, platform.Resumed{})

	if err := platform.NewLoop(d).Run(th); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"configure 1080x2280", "acquire", "present", "unconfigure"}
	if !reflect.DeepEqual(th.gpu.ops, want) {
		t.Errorf("ops = %v, want %v", th.gpu.ops, want)
	}
	cfg := th.gpu.configs[0]
	if cfg.PresentMode != surface.PresentModeFifo {
		t.Errorf("present mode = %v, want fifo", cfg.PresentMode)
	}
	if cfg.Format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("format = %v, want the sRGB format", cfg.Format)
	}
	if cfg.AlphaMode != surface.AlphaModeOpaque {
		t.Errorf("alpha mode = %v", cfg.AlphaMode)
	}

	l := th.Viewport().Logical()
	if math.Abs(l.Width-392.727) > 0.01 || math.Abs(l.Height-829.091) > 0.01 {
		t.Errorf("logical size = %.3fx%.3f", l.Width, l.Height)
	}
	if got := th.ui.Bounds(); got.Width != l.Width || got.Height != l.Height {
		t.Errorf("ui bounds = %v, want %v", got, l)
	}
	if !d.win.imeAllow {
		t.Error("IME not allowed on the window")
	}
	if len(th.rend.frames) != 1 || th.rend.backgrounds[0] != ui.RGB(0, 0, 1) {
		t.Errorf("rendered frames = %d, backgrounds %v", len(th.rend.frames), th.rend.backgrounds)
	}
	if th.State() != Exiting || th.gpu.released != 1 || th.rend.closed != 1 {
		t.Errorf("after exit: state %v, contexts released %d, renderer closed %d",
			th.State(), th.gpu.released, th.rend.closed)
	}
}

func TestResizeReconfiguresOnce(t *testing.T) {
	th := newTestHost(newForm)
	d := newFakeDriver(1080, 2280, 2.75,
		platform.Resumed{},
		platform.RedrawRequested{},
		platform.Resized{Width: 1000, Height: 1000},
		platform.Resized{Width: 2280, Height: 1080},
	)

	if err := platform.NewLoop(d).Run(th); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if th.gpu.configures() != 2 {
		t.Fatalf("configures = %d, want 2: %v", th.gpu.configures(), th.gpu.ops)
	}
	last := th.gpu.configs[1]
	if last.Width != 2280 || last.Height != 1080 {
		t.Errorf("reconfigured to %dx%d, want 2280x1080", last.Width, last.Height)
	}
	if got := th.rend.frames[len(th.rend.frames)-1].Physical(); got != (viewport.Size{Width: 2280, Height: 1080}) {
		t.Errorf("last frame size = %v", got)
	}
}

func TestFatalFrameStopsLoop(t *testing.T) {
	for _, fatal := range []error{surface.ErrOutOfMemory, surface.ErrDeviceLost} {
		th := newTestHost(newForm)
		th.gpu.acquire = []error{fatal}
		d := newFakeDriver(800, 600, 1, platform.Resumed{}, platform.Focused{Focused: true})

		err := platform.NewLoop(d).Run(th)
		if !errors.Is(err, ErrFatalFrame) || !errors.Is(err, fatal) {
			t.Errorf("%v: Run error = %v", fatal, err)
		}
		if th.State() != Exiting {
			t.Errorf("%v: state = %v", fatal, th.State())
		}
		if !errors.Is(th.Err(), fatal) {
			t.Errorf("%v: Err() = %v", fatal, th.Err())
		}
	}
}

func TestTransientFrameErrorRetries(t *testing.T) {
	for _, transient := range []error{surface.ErrOutdated, surface.ErrLost, surface.ErrTimeout} {
		th := newTestHost(newForm)
		th.gpu.acquire = []error{transient}
		d := newFakeDriver(800, 600, 1, platform.Resumed{})

		if err := platform.NewLoop(d).Run(th); err != nil {
			t.Fatalf("%v: Run: %v", transient, err)
		}
		if d.win.redraws != 2 {
			t.Errorf("%v: RequestRedraw calls = %d, want 2", transient, d.win.redraws)
		}
		if len(th.rend.frames) != 1 {
			t.Errorf("%v: rendered frames = %d, want 1", transient, len(th.rend.frames))
		}
		wantConfigures := 1
		if surface.NeedsReconfigure(transient) {
			wantConfigures = 2
		}
		if th.gpu.configures() != wantConfigures {
			t.Errorf("%v: configures = %d, want %d", transient, th.gpu.configures(), wantConfigures)
		}
	}
}

func TestRenderErrorDiscardsFrame(t *testing.T) {
	th := newTestHost(newForm)
	th.rend.err = errors.New("encoder failed")
	d := newFakeDriver(800, 600, 1, platform.Resumed{})
	d.step = func(platform.Event) {
		// Let the retry succeed.
		if d.win.redraws > 1 {
			th.rend.err = nil
		}
	}

	if err := platform.NewLoop(d).Run(th); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"configure 800x600", "acquire", "discard", "acquire", "present", "unconfigure"}
	if !reflect.DeepEqual(th.gpu.ops, want) {
		t.Errorf("ops = %v, want %v", th.gpu.ops, want)
	}
}

func TestStartupFailure(t *testing.T) {
	th := newTestHost(newForm)
	th.gpu.openErr = surface.ErrNoAdapter
	d := newFakeDriver(800, 600, 1, platform.Resumed{}, platform.RedrawRequested{})

	err := platform.NewLoop(d).Run(th)
	if !errors.Is(err, ErrStartup) || !errors.Is(err, surface.ErrNoAdapter) {
		t.Errorf("Run error = %v", err)
	}
	if th.Program() != nil {
		t.Error("program created despite failed startup")
	}
}

func TestStartupWithoutWindow(t *testing.T) {
	th := newTestHost(newForm)
	d := newFakeDriver(800, 600, 1, platform.Resumed{})
	d.noWindow = true

	err := platform.NewLoop(d).Run(th)
	if !errors.Is(err, ErrStartup) || !errors.Is(err, platform.ErrNoWindow) {
		t.Errorf("Run error = %v", err)
	}
	if th.gpu.opened != 0 {
		t.Errorf("device opened without a window")
	}
}

func TestZeroSizeWindowWaitsForResize(t *testing.T) {
	th := newTestHost(newForm)
	d := newFakeDriver(0, 0, 1, platform.Resumed{}, platform.Resized{Width: 640, Height: 480})

	if err := platform.NewLoop(d).Run(th); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"configure 640x480", "acquire", "present", "unconfigure"}
	if !reflect.DeepEqual(th.gpu.ops, want) {
		t.Errorf("ops = %v, want %v", th.gpu.ops, want)
	}
}

func TestZeroSizeWindowIdles(t *testing.T) {
	th := newTestHost(newForm)
	d := newFakeDriver(0, 0, 1)
	l := platform.NewLoop(d)

	th.Resumed(l)
	if d.win.redraws != 1 {
		t.Fatalf("redraws after Resumed = %d, want 1", d.win.redraws)
	}
	for range 10 {
		th.WindowEvent(l, platform.RedrawRequested{})
		th.AboutToWait(l)
	}
	if d.win.redraws != 1 || th.RedrawNeeded() {
		t.Errorf("idle 0x0 window: redraws=%d needed=%v, want 1 and false", d.win.redraws, th.RedrawNeeded())
	}
	if len(th.gpu.ops) != 0 {
		t.Errorf("ops = %v, want none", th.gpu.ops)
	}

	th.WindowEvent(l, platform.Resized{Width: 640, Height: 480})
	th.AboutToWait(l)
	if d.win.redraws != 2 {
		t.Fatalf("redraws after resize = %d, want 2", d.win.redraws)
	}
	th.WindowEvent(l, platform.RedrawRequested{})
	want := []string{"configure 640x480", "acquire", "present"}
	if !reflect.DeepEqual(th.gpu.ops, want) {
		t.Errorf("ops = %v, want %v", th.gpu.ops, want)
	}
	if th.RedrawNeeded() {
		t.Error("redraw still needed after the first frame")
	}
}

func TestIdleDoesNotRedraw(t *testing.T) {
	th := newTestHost(newForm)
	d := newFakeDriver(300, 600, 1)
	l := platform.NewLoop(d)

	th.Resumed(l)
	d.events = nil
	th.WindowEvent(l, platform.RedrawRequested{})
	if th.RedrawNeeded() {
		t.Fatal("redraw still needed after a completed frame")
	}
	redraws := d.win.redraws

	th.AboutToWait(l)
	if th.RedrawNeeded() || d.win.redraws != redraws {
		t.Errorf("empty drain: needed=%v, redraws %d -> %d", th.RedrawNeeded(), redraws, d.win.redraws)
	}

	// A pointer move is an event even if nothing visible changes.
	th.WindowEvent(l, platform.CursorMoved{X: 5, Y: 5})
	th.AboutToWait(l)
	if !th.RedrawNeeded() || d.win.redraws != redraws+1 {
		t.Errorf("non-empty drain: needed=%v, redraws %d -> %d", th.RedrawNeeded(), redraws, d.win.redraws)
	}

	// Already requested; another idle cycle must not ask again.
	th.AboutToWait(l)
	if d.win.redraws != redraws+1 {
		t.Errorf("duplicate RequestRedraw: %d", d.win.redraws)
	}
}

func TestKeyboardPolicy(t *testing.T) {
	tests := []struct {
		policy KeyboardPolicy
		want   []string
	}{
		{KeyboardOrdered, []string{ui.ShowKeyboard, ui.HideKeyboard, ui.ShowKeyboard}},
		// The second tap blurs one field and focuses the other in a
		// single update; only its show survives.
		{KeyboardLastWins, []string{ui.ShowKeyboard, ui.ShowKeyboard}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			br := &fakeBridge{}
			th := newTestHost(newForm, WithBridge(br), WithKeyboardPolicy(tt.policy))
			events := []platform.Event{platform.Resumed{}}
			events = append(events, tap(50, 70)...)
			events = append(events, tap(50, 20)...)
			d := newFakeDriver(300, 600, 1, events...)

			if err := platform.NewLoop(d).Run(th); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !reflect.DeepEqual(br.actions, tt.want) {
				t.Errorf("bridge actions = %v, want %v", br.actions, tt.want)
			}
		})
	}
}

func TestFocusMoveHidesBeforeShowing(t *testing.T) {
	br := &fakeBridge{}
	th := newTestHost(newForm, WithBridge(br))
	d := newFakeDriver(300, 600, 1)
	l := platform.NewLoop(d)
	th.Resumed(l)

	for _, ev := range tap(50, 70) {
		th.WindowEvent(l, ev)
	}
	th.AboutToWait(l)
	for _, ev := range tap(50, 20) {
		th.WindowEvent(l, ev)
	}
	th.AboutToWait(l)

	// Commands are posted, not invoked; Run delivers them next iteration.
	if len(br.actions) != 0 {
		t.Fatalf("bridge invoked during update: %v", br.actions)
	}
	if err := l.Run(th); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{ui.ShowKeyboard, ui.HideKeyboard, ui.ShowKeyboard}
	if !reflect.DeepEqual(br.actions, want) {
		t.Errorf("bridge actions = %v, want %v", br.actions, want)
	}
	p := th.Program().(*formProgram)
	wantMsgs := []ui.Message{formMsg{1, true}, formMsg{1, false}, formMsg{0, true}}
	if !reflect.DeepEqual(p.msgs, wantMsgs) {
		t.Errorf("messages = %v, want %v", p.msgs, wantMsgs)
	}
}

func TestFilterKeyboard(t *testing.T) {
	show, hide := ui.Action(ui.ShowKeyboard), ui.Action(ui.HideKeyboard)
	other := ui.Action("vibrate")
	cmds := []ui.Command{show, other, hide, other, show}

	h := &Host{opts: options{keyboard: KeyboardLastWins}}
	got := h.filterKeyboard(append([]ui.Command(nil), cmds...))
	want := []ui.Command{other, other, show}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("last wins = %v, want %v", got, want)
	}

	h.opts.keyboard = KeyboardOrdered
	if got := h.filterKeyboard(cmds); !reflect.DeepEqual(got, cmds) {
		t.Errorf("ordered = %v", got)
	}
}

func TestSuspendResumeKeepsProgram(t *testing.T) {
	created := 0
	th := newTestHost(func() ui.Program { created++; return controls.New() })
	d := newFakeDriver(1080, 2280, 2.75,
		platform.Resumed{},
		platform.Suspended{},
		platform.Resized{Width: 100, Height: 100}, // ignored while suspended
		platform.Resumed{},
	)
	l := platform.NewLoop(d)
	var during State
	d.step = func(ev platform.Event) {
		if _, ok := ev.(platform.Resized); ok {
			during = th.State()
			th.Program().Update(controls.InputChanged("kept"))
		}
	}

	if err := l.Run(th); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if created != 1 {
		t.Errorf("program created %d times", created)
	}
	if during != Suspended {
		t.Errorf("state while suspended = %v", during)
	}
	if got := th.Program().(*controls.Controls).Input(); got != "kept" {
		t.Errorf("input after resume = %q", got)
	}
	if th.gpu.opened != 2 || th.gpu.released != 2 {
		t.Errorf("contexts opened %d released %d, want 2 and 2", th.gpu.opened, th.gpu.released)
	}
	if th.rend.closed != 2 {
		t.Errorf("renderer closed %d times", th.rend.closed)
	}
}

func TestSnapshotRestoredOnColdStart(t *testing.T) {
	st := memStore{}

	first := newTestHost(func() ui.Program { return controls.New() }, WithStore(st, controls.SnapshotKey))
	d := newFakeDriver(1080, 2280, 2.75, platform.Resumed{}, platform.Suspended{})
	d.step = func(ev platform.Event) {
		if _, ok := ev.(platform.Suspended); ok {
			c := first.Program().(*controls.Controls)
			c.Update(controls.BackgroundChanged(ui.RGB(0.25, 0.5, 0.75)))
			c.Update(controls.InputChanged("draft"))
		}
	}
	if err := platform.NewLoop(d).Run(first); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, ok := st[controls.SnapshotKey]; !ok {
		t.Fatalf("no snapshot saved; store = %v", st)
	}

	second := newTestHost(func() ui.Program { return controls.New() }, WithStore(st, controls.SnapshotKey))
	d = newFakeDriver(1080, 2280, 2.75, platform.Resumed{})
	if err := platform.NewLoop(d).Run(second); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	c := second.Program().(*controls.Controls)
	if c.Input() != "draft" || c.BackgroundColor() != ui.RGB(0.25, 0.5, 0.75) {
		t.Errorf("restored input %q background %v", c.Input(), c.BackgroundColor())
	}
	if bg := second.rend.backgrounds[0]; bg != ui.RGB(0.25, 0.5, 0.75) {
		t.Errorf("first frame background = %v", bg)
	}
}

func TestNoBridgeDropsActions(t *testing.T) {
	th := newTestHost(newForm)
	d := newFakeDriver(300, 600, 1, append([]platform.Event{platform.Resumed{}}, tap(50, 20)...)...)
	if err := platform.NewLoop(d).Run(th); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestCursorFollowsInteraction(t *testing.T) {
	th := newTestHost(newForm)
	d := newFakeDriver(300, 600, 1, platform.Resumed{}, platform.CursorMoved{X: 50, Y: 20})
	if err := platform.NewLoop(d).Run(th); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []platform.CursorIcon{platform.CursorText}
	if !reflect.DeepEqual(d.win.cursors, want) {
		t.Errorf("cursors = %v, want %v", d.win.cursors, want)
	}
}

func TestClearColor(t *testing.T) {
	c := ui.Color{R: 0.5, G: 0, B: 1, A: 1}

	got := clearColor(c, false)
	if got.R != 0.5 || got.G != 0 || got.B != 1 || got.A != 1 {
		t.Errorf("unorm clear = %+v", got)
	}

	lin := clearColor(c, true)
	if math.Abs(lin.R-0.214) > 0.001 || lin.B != 1 || lin.A != 1 {
		t.Errorf("srgb clear = %+v", lin)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Uninitialized: "Uninitialized",
		Active:        "Active",
		Suspended:     "Suspended",
		Exiting:       "Exiting",
		State(9):      "State(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
