package process

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLineQueueFIFOOrder(t *testing.T) {
	q := newLineQueue()
	q.push("a")
	q.push("b")
	q.push("c")

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestLineQueueTryPopOnEmpty(t *testing.T) {
	q := newLineQueue()
	_, ok := q.tryPop()
	assert.False(t, ok)
}

func TestLineQueuePopBlocksUntilPush(t *testing.T) {
	q := newLineQueue()
	done := make(chan string)
	go func() {
		v, _ := q.pop()
		done <- v
	}()

	select {
	case <-done:
		t.Fatal("pop returned before any push")
	case <-time.After(50 * time.Millisecond):
	}

	q.push("late")
	select {
	case v := <-done:
		assert.Equal(t, "late", v)
	case <-time.After(5 * time.Second):
		t.Fatal("pop did not unblock after push")
	}
}

func TestLineQueueCloseUnblocksPop(t *testing.T) {
	q := newLineQueue()
	done := make(chan bool)
	go func() {
		_, ok := q.pop()
		done <- ok
	}()

	select {
	case <-done:
		t.Fatal("pop returned before close")
	case <-time.After(50 * time.Millisecond):
	}

	q.close()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("pop did not unblock after close")
	}
}

func TestLineQueueRetainsQueuedItemsAfterClose(t *testing.T) {
	q := newLineQueue()
	q.push("pending")
	q.close()

	v, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, "pending", v)

	_, ok = q.pop()
	assert.False(t, ok)
}

// TestLineQueueOrderPreservedRapid checks that any sequence of pushes is
// drained in exactly the order pushed, regardless of length or content.
func TestLineQueueOrderPreservedRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z0-9 ]{0,20}`), 0, 64).Draw(rt, "lines")
		q := newLineQueue()
		for _, l := range lines {
			q.push(l)
		}
		for i, want := range lines {
			got, ok := q.pop()
			if !ok {
				rt.Fatalf("queue drained early at index %d", i)
			}
			if got != want {
				rt.Fatalf("index %d: got %q, want %q", i, got, want)
			}
		}
		if _, ok := q.tryPop(); ok {
			rt.Fatalf("queue held more items than were pushed")
		}
	})
}

func TestLineQueuePushAfterCloseIsDropped(t *testing.T) {
	q := newLineQueue()
	q.close()
	q.push("too late")

	_, ok := q.tryPop()
	assert.False(t, ok)
}
