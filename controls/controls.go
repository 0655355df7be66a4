// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package controls is the demo UI program: three sliders pick the scene's
// background color and a text field asks for the soft keyboard while it
// has focus.
package controls

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/nativehost/internal/logging"
	"github.com/gogpu/nativehost/ui"
)

// SnapshotKey names the program's entry in a snapshot store.
const SnapshotKey = "controls"

// Messages published by the view.
type (
	BackgroundChanged ui.Color
	InputChanged      string
	InputFocused      bool
	InputSubmitted    struct{}
)

// Controls holds the program state.
type Controls struct {
	background ui.Color
	input      string
	submitted  []string
}

// New returns controls with a black background and an empty field.
func New() *Controls {
	return &Controls{background: ui.Black}
}

// Input returns the text field's contents.
func (c *Controls) Input() string { return c.input }

// Submitted returns the values entered with the enter key, oldest first.
func (c *Controls) Submitted() []string { return c.submitted }

// BackgroundColor implements ui.Program.
func (c *Controls) BackgroundColor() ui.Color { return c.background }

// Update implements ui.Program.
func (c *Controls) Update(m ui.Message) ui.Command {
	logging.L().Debug("controls: update", "message", fmt.Sprintf("%T", m))
	switch m := m.(type) {
	case BackgroundChanged:
		c.background = ui.Color(m)
	case InputChanged:
		c.input = string(m)
	case InputSubmitted:
		c.submitted = append(c.submitted, c.input)
		c.input = ""
	case InputFocused:
		if m {
			return ui.Action(ui.ShowKeyboard)
		}
		return ui.Action(ui.HideKeyboard)
	}
	return ui.None()
}

// View implements ui.Program.
func (c *Controls) View() ui.Element {
	bg := c.background
	channel := func(v float32, set func(*ui.Color, float32)) ui.Element {
		return ui.Slider(0, 1, float64(v), func(x float64) ui.Message {
			next := bg
			set(&next, float32(x))
			return BackgroundChanged(next)
		}).Step(0.01)
	}
	sliders := ui.Row(
		channel(bg.R, func(c *ui.Color, v float32) { c.R = v }),
		channel(bg.G, func(c *ui.Color, v float32) { c.G = v }),
		channel(bg.B, func(c *ui.Color, v float32) { c.B = v }),
	).Width(ui.Fixed(500)).Spacing(20)

	field := ui.TextInput("Placeholder", c.input, func(s string) ui.Message { return InputChanged(s) }).
		OnFocus(func(f bool) ui.Message { return InputFocused(f) }).
		OnSubmit(InputSubmitted{})

	content := ui.Column(
		ui.Label("Background color").Color(ui.White),
		ui.Label(describe(bg)).Size(14).Color(ui.White),
		field,
		sliders,
	).Spacing(10)

	return ui.Container(content).
		Padding(10).
		Width(ui.Fill).
		Height(ui.Fill).
		Align(ui.Start, ui.End)
}

func describe(c ui.Color) string {
	return fmt.Sprintf("r: %.2f  g: %.2f  b: %.2f", c.R, c.G, c.B)
}

type snapshot struct {
	Background [3]float32 `json:"background"`
	Input      string     `json:"input"`
}

// Snapshot implements ui.Snapshotter.
func (c *Controls) Snapshot() ([]byte, error) {
	return json.Marshal(snapshot{
		Background: [3]float32{c.background.R, c.background.G, c.background.B},
		Input:      c.input,
	})
}

// Restore implements ui.Snapshotter. On error the state is unchanged.
func (c *Controls) Restore(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("controls: restore: %w", err)
	}
	c.background = ui.RGB(s.Background[0], s.Background[1], s.Background[2])
	c.input = s.Input
	return nil
}
