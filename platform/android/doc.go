// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package android drives the platform loop from an Android NativeActivity.
//
// The activity callbacks run on the Java UI thread. They convert each
// callback into a platform.Event, append it to a locked queue and wake the
// dispatch thread through a pipe registered with its ALooper. Input events
// arrive on the same looper from the activity's AInputQueue.
//
// The translation of key codes, meta state and motion events is plain Go
// and builds on every platform; the cgo driver builds only for android.
//
// A program registers its entry point from an init function, since a
// NativeActivity library never runs main.main:
//
//	func init() { android.Main(run) }
//
//	func run(d *android.Driver) { ... }
package android
