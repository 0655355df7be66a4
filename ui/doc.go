// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ui hosts an immediate-update UI program.
//
// A Program is any value with Update, View and BackgroundColor. Host owns
// one, queues normalized events between frames, and on Update drains the
// whole queue in one pass: events go through the widget tree, the
// resulting messages are applied to the program in arrival order, and
// only then is the view rebuilt. Readers between two drains see the last
// fully applied state.
//
// Messages may produce Commands. The only non-empty command is Action,
// a request for the embedder to perform a named platform action such as
// showing the soft keyboard.
package ui
