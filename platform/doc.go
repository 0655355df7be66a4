// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform models the operating system side of a native window:
// lifecycle and window events, the window handle, and a single-threaded
// dispatch loop that delivers them to a Handler.
//
// A Driver produces raw events (platform/android is the NativeActivity
// driver). Loop owns the dispatch thread. Handlers never see events
// concurrently, so no locking is needed behind the Handler interface.
//
// Values posted with Loop.Post are deferred self-messages: they are queued
// on the dispatch thread and delivered as distinct UserEvent calls on the
// next loop iteration, before the loop blocks on the driver again.
package platform
