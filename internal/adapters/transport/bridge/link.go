package bridge

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Link carries raw events in and raw commands out.
type Link interface {
	ReadEvent(ctx context.Context) ([]byte, error)
	WriteCommand(ctx context.Context, payload []byte) error
	Close() error
}

var ErrLinkClosed = errors.New("bridge link closed")

// LineLink exchanges newline-delimited JSON over a reader and a writer,
// typically the stdio of a companion process.
type LineLink struct {
	lines chan lineResult
	done  chan struct{}
	once  sync.Once

	mu sync.Mutex
	w  io.Writer
}

type lineResult struct {
	line []byte
	err  error
}

func NewLineLink(r io.Reader, w io.Writer) *LineLink {
	l := &LineLink{
		lines: make(chan lineResult),
		done:  make(chan struct{}),
		w:     w,
	}
	go l.readLoop(bufio.NewReader(r))
	return l
}

func (l *LineLink) readLoop(r *bufio.Reader) {
	defer close(l.lines)
	for {
		line, err := r.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			select {
			case l.lines <- lineResult{line: line}:
			case <-l.done:
				return
			}
		}
		if err != nil {
			select {
			case l.lines <- lineResult{err: err}:
			case <-l.done:
			}
			return
		}
	}
}

// ReadEvent returns the next non-empty line. It returns io.EOF once the
// reader is exhausted.
func (l *LineLink) ReadEvent(ctx context.Context) ([]byte, error) {
	select {
	case res, ok := <-l.lines:
		if !ok {
			return nil, io.EOF
		}
		if res.err != nil {
			return nil, res.err
		}
		return res.line, nil
	case <-l.done:
		return nil, ErrLinkClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *LineLink) WriteCommand(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-l.done:
		return ErrLinkClosed
	default:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return nil
}

func (l *LineLink) Close() error {
	l.once.Do(func() {
		close(l.done)
	})
	return nil
}
