// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "time"

const (
	pollMin = 50 * time.Microsecond
	pollMax = 2 * time.Millisecond
)

// inflight holds the submission indexes of frames the GPU may still be
// executing, oldest first.
type inflight struct {
	pending []uint64
}

func (f *inflight) add(idx uint64) { f.pending = append(f.pending, idx) }

func (f *inflight) reset() { f.pending = f.pending[:0] }

// retire drops every index at or below completed.
func (f *inflight) retire(completed uint64) {
	n := 0
	for n < len(f.pending) && f.pending[n] <= completed {
		n++
	}
	if n > 0 {
		f.pending = append(f.pending[:0], f.pending[n:]...)
	}
}

// waitBelow polls until fewer than limit submissions are pending. It
// returns ErrTimeout if that does not happen within timeout.
func (f *inflight) waitBelow(limit int, poll func() uint64, timeout time.Duration) error {
	limit = max(limit, 1)
	if len(f.pending) < limit {
		return nil
	}
	deadline := time.Now().Add(timeout)
	backoff := pollMin
	for {
		f.retire(poll())
		if len(f.pending) < limit {
			return nil
		}
		if !time.Now().Before(deadline) {
			return ErrTimeout
		}
		time.Sleep(backoff)
		backoff = min(backoff*2, pollMax)
	}
}
