//go:build unix

package term

import (
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/sys/unix"

	"github.com/c-bata/replkit/key"
)

// DefaultIdleTimeout is how long the reader waits for more bytes before
// flushing the parser. It resolves the "ESC pressed alone or sequence
// start" ambiguity for interactive use.
const DefaultIdleTimeout = 50 * time.Millisecond

// Reader drives a parser from a file descriptor. It polls for input,
// feeds whatever arrives, and flushes the parser when the descriptor has
// been quiet for the idle timeout, so a lone ESC keypress surfaces as an
// Escape event without waiting for a following byte.
type Reader struct {
	fd     int
	parser *key.Parser
	idle   time.Duration
	events chan key.Event
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithIdleTimeout overrides DefaultIdleTimeout.
func WithIdleTimeout(d time.Duration) ReaderOption {
	return func(r *Reader) { r.idle = d }
}

// WithParser supplies a parser, typically one whose table carries dialect
// sequences. The reader assumes sole ownership of it.
func WithParser(p *key.Parser) ReaderOption {
	return func(r *Reader) { r.parser = p }
}

// NewReader returns a reader over fd. Run must be called to start it.
func NewReader(fd int, opts ...ReaderOption) *Reader {
	r := &Reader{
		fd:     fd,
		idle:   DefaultIdleTimeout,
		events: make(chan key.Event, 64),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.parser == nil {
		r.parser = key.NewParser()
	}
	return r
}

// Events delivers decoded key events. The channel is closed when Run
// returns.
func (r *Reader) Events() <-chan key.Event {
	return r.events
}

// Run reads until the context is cancelled or the descriptor reaches EOF.
// On EOF it flushes the parser, delivers the remaining events and returns
// io.EOF. Cancellation returns the context error.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.events)

	buf := make([]byte, 1024)
	timeoutMs := int(r.idle / time.Millisecond)
	if timeoutMs <= 0 {
		timeoutMs = 1
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}

		if n == 0 {
			// Idle. Resolve whatever is buffered.
			if err := r.deliver(ctx, r.parser.Flush()); err != nil {
				return err
			}
			continue
		}

		if fds[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
			return errors.New("poll error on input descriptor")
		}

		nr, err := unix.Read(r.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return err
		}
		if nr == 0 {
			err := r.deliver(ctx, r.parser.Flush())
			if err != nil {
				return err
			}
			return io.EOF
		}

		if err := r.deliver(ctx, r.parser.Feed(buf[:nr])); err != nil {
			return err
		}
	}
}

func (r *Reader) deliver(ctx context.Context, events []key.Event) error {
	for _, ev := range events {
		if ev.Key == key.Ignore {
			continue
		}
		select {
		case r.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
