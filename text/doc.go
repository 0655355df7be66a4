// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package text shapes and outlines UI text.
//
// Shaping goes through go-text/typesetting's HarfBuzz port; glyph outlines
// come from golang.org/x/image/font/sfnt. Both read the same font bytes,
// so glyph IDs produced by the shaper index directly into the sfnt font.
//
// The default face is Go Regular (golang.org/x/image/font/gofont).
package text
