// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface manages the GPU presentation surface of the native
// window: device and queue acquisition, surface configuration policy,
// resize coalescing, frame acquisition and presentation.
//
// Manager holds the policy and is backend independent. HALBackend
// implements it on github.com/gogpu/wgpu/hal.
//
// Resizes are never applied where they are reported. RequestResize only
// records the latest size; ApplyPendingResize, called at the start of a
// frame, performs at most one reconfiguration for any number of pending
// resizes.
package surface
