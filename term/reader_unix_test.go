//go:build unix

package term

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/c-bata/replkit/key"
)

func startReader(t *testing.T, opts ...ReaderOption) (*os.File, *Reader, <-chan error) {
	t.Helper()
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		pr.Close()
		pw.Close()
	})

	r := NewReader(int(pr.Fd()), opts...)
	done := make(chan error, 1)
	go func() {
		done <- r.Run(context.Background())
	}()
	return pw, r, done
}

func waitEvent(t *testing.T, r *Reader) key.Event {
	t.Helper()
	select {
	case ev, ok := <-r.Events():
		if !ok {
			t.Fatal("event channel closed early")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
	return key.Event{}
}

func TestReaderDecodesSequences(t *testing.T) {
	pw, r, done := startReader(t)

	if _, err := pw.Write([]byte("\x1b[A\x03")); err != nil {
		t.Fatal(err)
	}

	if ev := waitEvent(t, r); ev.Key != key.Up {
		t.Errorf("first event = %v, want Up", ev)
	}
	if ev := waitEvent(t, r); ev.Key != key.ControlC {
		t.Errorf("second event = %v, want Ctrl+C", ev)
	}

	pw.Close()
	select {
	case err := <-done:
		if !errors.Is(err, io.EOF) {
			t.Errorf("Run() = %v, want io.EOF", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after EOF")
	}
}

func TestReaderIdleFlush(t *testing.T) {
	pw, r, _ := startReader(t, WithIdleTimeout(10*time.Millisecond))

	// A lone ESC must surface once the input goes idle.
	if _, err := pw.Write([]byte{0x1b}); err != nil {
		t.Fatal(err)
	}

	if ev := waitEvent(t, r); ev.Key != key.Escape {
		t.Errorf("event = %v, want Escape", ev)
	}
}

func TestReaderEOFFlushes(t *testing.T) {
	pw, r, done := startReader(t, WithIdleTimeout(time.Hour))

	if _, err := pw.Write([]byte("\x1b[")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	pw.Close()

	if ev := waitEvent(t, r); ev.Key != key.Escape {
		t.Errorf("first event = %v, want Escape", ev)
	}
	ev := waitEvent(t, r)
	if ev.Text() != "[" {
		t.Errorf("second event = %v, want literal %q", ev, "[")
	}

	select {
	case err := <-done:
		if !errors.Is(err, io.EOF) {
			t.Errorf("Run() = %v, want io.EOF", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return")
	}
}

func TestReaderCancel(t *testing.T) {
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer pr.Close()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := NewReader(int(pr.Fd()), WithIdleTimeout(10*time.Millisecond))
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	if _, ok := <-r.Events(); ok {
		t.Error("event channel still open after Run returned")
	}
}

func TestReaderDialectParser(t *testing.T) {
	tbl := key.NewTable()
	tbl.Insert([]byte("\x1b[a"), key.ShiftUp)
	p := key.NewParserWithTable(tbl)

	pw, r, _ := startReader(t, WithParser(p))
	if _, err := pw.Write([]byte("\x1b[a")); err != nil {
		t.Fatal(err)
	}
	if ev := waitEvent(t, r); ev.Key != key.ShiftUp {
		t.Errorf("event = %v, want Shift+Up", ev)
	}
}
