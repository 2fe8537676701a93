// Package process implements the subprocess channel: a deadlock-free,
// line-oriented duplex bridge to a CIN child process, realized as two
// worker goroutines bridging stdin/stdout through in-memory queues. A
// shared termination flag plus a sentinel write unblocks the writer on
// kill; the reader drains until the pipe itself closes.
package process

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// OutputListener is offered every line read from the child's stdout before
// it is enqueued, used internally for tee-style mirroring.
type OutputListener func(line string)

// ChannelLike is the subprocess channel contract: both *Channel
// and *MockChannel satisfy it, so runtime.Runtime can be driven by a real
// subprocess or by an in-memory test double interchangeably.
type ChannelLike interface {
	WriteLine(s string) error
	TryReadLine() (string, bool)
	ReadLine() (string, error)
	Pid() int
	Kill() error
	IsTerminated() bool
}

// Recipe is an OS-level invocation recipe: everything needed to spawn one
// CIN process. Family-specific builders live in cins/common.
type Recipe struct {
	ExecPath string
	Args     []string
	Env      []string // nil means inherit the parent's environment
	Cwd      string
}

// Channel owns a live child process, its stdin/stdout pipes, an outbound
// line queue serviced by a writer goroutine, and an inbound line queue
// filled by a reader goroutine.
type Channel struct {
	ID uuid.UUID

	cmd   *exec.Cmd
	stdin io.WriteCloser

	outbound *lineQueue
	inbound  *lineQueue

	terminated atomic.Bool
	killOnce   sync.Once

	writerDone chan struct{}
}

// Spawn launches exec_path with args/env/cwd and starts the writer and
// reader goroutines. listener may be nil. Spawn fails with a navm.LaunchError
// if the executable cannot be started; no goroutines are left running on
// failure.
func Spawn(recipe Recipe, listener OutputListener) (*Channel, error) {
	cmd := exec.Command(recipe.ExecPath, recipe.Args...)
	if recipe.Env != nil {
		cmd.Env = recipe.Env
	}
	if recipe.Cwd != "" {
		cmd.Dir = recipe.Cwd
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, navm.LaunchError{Reason: "stdin pipe", Cause: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, navm.LaunchError{Reason: "stdout pipe", Cause: err}
	}
	cmd.Stderr = os.Stderr // child stderr passes through to ours

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, navm.LaunchError{Reason: "spawn", Cause: err}
	}

	ch := &Channel{
		ID:         uuid.New(),
		cmd:        cmd,
		stdin:      stdin,
		outbound:   newLineQueue(),
		inbound:    newLineQueue(),
		writerDone: make(chan struct{}),
	}

	go ch.runWriter()
	go ch.runReader(stdout, listener)

	return ch, nil
}

// WriteLine appends a line to the outbound queue. It fails only if the
// channel has been torn down.
func (c *Channel) WriteLine(s string) error {
	if c.terminated.Load() {
		return navm.ChannelError{Op: "write", Cause: errors.New("channel torn down")}
	}
	c.outbound.push(s)
	return nil
}

// TryReadLine is the non-blocking read variant: returns the next available
// line, or ("", false) if none is currently queued.
func (c *Channel) TryReadLine() (string, bool) {
	return c.inbound.tryPop()
}

// ReadLine blocks until a line is available. It returns an error once the
// channel is torn down and drained.
func (c *Channel) ReadLine() (string, error) {
	line, ok := c.inbound.pop()
	if !ok {
		return "", navm.ChannelError{Op: "read", Cause: errors.New("channel torn down and drained")}
	}
	return line, nil
}

// Pid returns the OS process ID of the child.
func (c *Channel) Pid() int {
	if c.cmd.Process == nil {
		return -1
	}
	return c.cmd.Process.Pid
}

// Kill is idempotent: it fires the termination flag, sends a sentinel to
// unblock the writer goroutine, force-kills the OS process (with a
// Windows taskkill fallback for JVM-style processes that ignore the first
// signal), and joins the writer goroutine. The reader goroutine is never
// joined: a goroutine blocked in a line read cannot be interrupted, so it
// is left to exit on its own once the pipe closes.
func (c *Channel) Kill() error {
	var err error
	c.killOnce.Do(func() {
		c.terminated.Store(true)

		// Unblock the writer goroutine, which may be parked popping from
		// outbound; the writer checks the termination flag before it would
		// act on this sentinel. push never blocks and never drops a line
		// (lineQueue is unbounded), so this always lands even if the
		// outbound queue happened to be empty.
		c.outbound.push("")

		if runtime.GOOS == "windows" && c.cmd.Process != nil {
			exec.Command("taskkill", "/F", "/PID", fmt.Sprintf("%d", c.cmd.Process.Pid)).Run()
		}
		if c.cmd.Process != nil {
			err = c.cmd.Process.Kill()
		}

		<-c.writerDone
		// The reader goroutine is the sole producer on inbound and is left
		// running (not joined, see doc comment); it closes inbound itself
		// once the pipe reports EOF, so post-mortem output already queued
		// stays readable after Kill returns.
	})
	return err
}

// IsTerminated reports whether Kill has been called (or the reader
// observed the subprocess exiting on its own, see runReader).
func (c *Channel) IsTerminated() bool { return c.terminated.Load() }

func (c *Channel) runWriter() {
	defer close(c.writerDone)
	for {
		line, ok := c.outbound.pop()
		if !ok {
			return
		}
		if c.terminated.Load() {
			return
		}
		if _, err := io.WriteString(c.stdin, line+"\n"); err != nil {
			// Broken pipe: exit; the channel is
			// considered torn down from the writer's perspective.
			c.terminated.Store(true)
			return
		}
	}
}

func (c *Channel) runReader(stdout io.Reader, listener OutputListener) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if listener != nil {
			listener(line)
		}
		c.inbound.push(line)
	}
	// EOF or scan error: if the termination flag isn't already set, the
	// child exited on its own. Either way there is nothing more to read.
	c.terminated.Store(true)
	c.inbound.close()
}
