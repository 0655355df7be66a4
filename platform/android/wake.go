//go:build linux

package android

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// wakePipe is a non-blocking pipe whose read end is watched by the
// dispatch thread's looper. Writing a byte wakes it.
type wakePipe struct {
	r, w int
}

func newWakePipe() (*wakePipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, fmt.Errorf("android: wake pipe: %w", err)
	}
	return &wakePipe{r: fds[0], w: fds[1]}, nil
}

// wake makes the read end readable. A full pipe already guarantees a
// wakeup, so EAGAIN is ignored.
func (p *wakePipe) wake() {
	for {
		_, err := unix.Write(p.w, []byte{1})
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return
	}
}

// drain empties the pipe and reports how many wakeups were pending.
func (p *wakePipe) drain() int {
	var buf [64]byte
	total := 0
	for {
		n, err := unix.Read(p.r, buf[:])
		if n > 0 {
			total += n
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil || n < len(buf) {
			return total
		}
	}
}

func (p *wakePipe) fd() int { return p.r }

func (p *wakePipe) close() error {
	return errors.Join(unix.Close(p.r), unix.Close(p.w))
}
