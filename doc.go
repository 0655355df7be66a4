// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package nativehost runs an immediate-update UI and a custom GPU scene
// inside the single native window a mobile OS grants the process.
//
// # Overview
//
// A Host is the platform.Handler driven by a platform.Loop. It reacts to
// lifecycle events by acquiring or dropping the window, the GPU device and
// the presentation surface; it translates input into ui events; it runs
// the ui update cycle when events are pending; and on every redraw request
// it composites the scene and the ui overlay into one frame.
//
// Lifecycle:
//
//	Uninitialized --Resumed--> Active --Suspended--> Suspended
//	      ^                      |  ^                   |
//	      |                      |  +-----Resumed-------+
//	      +-- any --CloseRequested--> Exiting
//
// # Frames
//
// A resize only records the new size. The surface is reconfigured on the
// redraw that follows, so a burst of resizes costs one reconfiguration.
// Frame acquisition failures are either fatal (out of memory, device
// lost), which stops the loop, or transient, which skips the frame and
// requests exactly one more redraw.
//
// # Native actions
//
// Commands returned by the ui program are posted back to the loop and
// delivered as user events on the next iteration, where they are handed
// to the Bridge. Bridge failures never reach the render loop.
//
// # Logging
//
// nativehost produces no log output by default. Use SetLogger to enable
// it; every sub-package shares the same logger.
//
// # Usage
//
//	host := nativehost.New(func() ui.Program { return controls.New() },
//		nativehost.WithBridge(br),
//		nativehost.WithClipboard(bridge.NewClipboard(br)),
//		nativehost.WithStore(db, controls.SnapshotKey),
//	)
//	if err := platform.NewLoop(driver).Run(host); err != nil {
//		log.Fatal(err)
//	}
package nativehost
