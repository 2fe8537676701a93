package process

import (
	"bytes"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MockPipe is an in-memory, condvar-backed pipe used by tests that need a
// Channel-shaped object without a real subprocess: writes append to a
// buffer, reads block until data or close, eliminating the strict
// goroutine-ordering races a synchronous io.Pipe would impose.
type MockPipe struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    bytes.Buffer
	closed bool
}

// NewMockPipe creates an open mock pipe.
func NewMockPipe() *MockPipe {
	p := &MockPipe{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *MockPipe) Read(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.buf.Len() == 0 && !p.closed {
		p.cond.Wait()
	}
	if p.closed && p.buf.Len() == 0 {
		return 0, io.EOF
	}
	return p.buf.Read(data)
}

func (p *MockPipe) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	n, err := p.buf.Write(data)
	p.cond.Signal()
	return n, err
}

func (p *MockPipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.cond.Broadcast()
	return nil
}

// WriteLine is a test convenience for feeding one line (plus trailing
// newline) as if the CIN subprocess had printed it.
func (p *MockPipe) WriteLine(s string) error {
	_, err := p.Write([]byte(s + "\n"))
	return err
}

// MockChannel is a Channel-shaped test double: it exposes the same
// WriteLine/TryReadLine/ReadLine/Kill contract but is driven by a MockPipe
// instead of a real os/exec.Cmd, letting tests exercise runtime.Runtime and
// the cins/ translators without spawning a CIN process.
type MockChannel struct {
	ID uuid.UUID

	In  *MockPipe // what the "CIN" would read (the runtime writes here)
	Out *MockPipe // what the "CIN" writes (the runtime reads from here)

	killed sync.Once
	dead   bool
	mu     sync.Mutex

	inbound chan string
	done    chan struct{}
}

// NewMockChannel creates a MockChannel and starts its internal reader
// goroutine draining Out into a line queue, mirroring Channel's own
// reader goroutine.
func NewMockChannel() *MockChannel {
	mc := &MockChannel{
		ID:      uuid.New(),
		In:      NewMockPipe(),
		Out:     NewMockPipe(),
		inbound: make(chan string, 1024),
		done:    make(chan struct{}),
	}
	go mc.drain()
	return mc
}

func (mc *MockChannel) drain() {
	defer close(mc.inbound)
	buf := make([]byte, 4096)
	var pending []byte
	for {
		n, err := mc.Out.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				mc.inbound <- string(pending[:idx])
				pending = pending[idx+1:]
			}
		}
		if err != nil {
			return
		}
	}
}

func (mc *MockChannel) WriteLine(s string) error {
	_, err := mc.In.Write([]byte(s + "\n"))
	return err
}

func (mc *MockChannel) TryReadLine() (string, bool) {
	select {
	case line, ok := <-mc.inbound:
		return line, ok
	default:
		return "", false
	}
}

func (mc *MockChannel) ReadLine() (string, error) {
	line, ok := <-mc.inbound
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (mc *MockChannel) Pid() int { return -1 }

// Kill closes both mock pipes, simulating subprocess termination.
func (mc *MockChannel) Kill() error {
	mc.killed.Do(func() {
		mc.mu.Lock()
		mc.dead = true
		mc.mu.Unlock()
		mc.In.Close()
		mc.Out.Close()
	})
	return nil
}

func (mc *MockChannel) IsTerminated() bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.dead
}
