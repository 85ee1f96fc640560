package buffer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[T any](t *testing.T, b *Unbounded[T]) []T {
	t.Helper()
	var out []T
	timeout := time.After(2 * time.Second)
	for {
		select {
		case item, ok := <-b.Out():
			if !ok {
				return out
			}
			out = append(out, item)
		case <-timeout:
			t.Fatal("timed out draining buffer")
		}
	}
}

func TestUnbounded_DeliversInOrder(t *testing.T) {
	b := NewUnbounded[int]()
	for i := 0; i < 100; i++ {
		b.Push(i)
	}
	b.Close()

	got := collect(t, b)
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestUnbounded_PushNeverBlocksWithoutConsumer(t *testing.T) {
	b := NewUnbounded[string]()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			b.Push("item")
		}
		b.Close()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Push blocked without a consumer")
	}

	got := collect(t, b)
	assert.Len(t, got, 1000)
}

func TestUnbounded_PushAfterCloseDropped(t *testing.T) {
	b := NewUnbounded[int]()
	b.Push(1)
	b.Close()
	b.Push(2)
	b.Close() // idempotent

	got := collect(t, b)
	assert.Equal(t, []int{1}, got)
}

func TestUnbounded_CloseWithoutItems(t *testing.T) {
	b := NewUnbounded[int]()
	b.Close()
	assert.Empty(t, collect(t, b))
}
