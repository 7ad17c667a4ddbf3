package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	p := NewWorkerPool(3, 10)
	results := p.Run(context.Background())

	var ran atomic.Int32
	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		i := i
		p.Submit(func(context.Context) error {
			ran.Add(1)
			if i == 4 {
				return boom
			}
			return nil
		})
	}
	p.Close()

	var failed int
	var total int
	for r := range results {
		total++
		if r.Err != nil {
			require.ErrorIs(t, r.Err, boom)
			failed++
		}
	}

	assert.Equal(t, int32(10), ran.Load())
	assert.Equal(t, 10, total)
	assert.Equal(t, 1, failed)
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	p := NewWorkerPool(2, 8)
	results := p.Run(context.Background())

	var current, peak atomic.Int32
	for i := 0; i < 8; i++ {
		p.Submit(func(context.Context) error {
			n := current.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return nil
		})
	}
	p.Close()
	for range results {
	}

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestWorkerPool_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewWorkerPool(1, 4)
	results := p.Run(ctx)

	release := make(chan struct{})
	var ran atomic.Int32
	for i := 0; i < 4; i++ {
		p.Submit(func(context.Context) error {
			ran.Add(1)
			<-release
			return nil
		})
	}
	p.Close()

	cancel()
	close(release)
	for range results {
	}

	assert.Less(t, ran.Load(), int32(4))
}
