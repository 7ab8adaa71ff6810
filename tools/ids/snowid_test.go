package ids

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_UniqueUnderConcurrency(t *testing.T) {
	req := require.New(t)
	g := NewGenerator(7)

	const workers, perWorker = 8, 2000
	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				local = append(local, g.Generate())
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	req.Len(seen, workers*perWorker)
}

func TestGenerator_EncodesNode(t *testing.T) {
	req := require.New(t)

	req.Equal(int64(42), NodeOf(NewGenerator(42).Generate()))
	// out of range falls back to node 1
	req.Equal(int64(1), NewGenerator(4096).NodeID())
}

func TestGenerator_Monotonic(t *testing.T) {
	req := require.New(t)
	g := NewGenerator(1)

	prev := g.Generate()
	for i := 0; i < 1000; i++ {
		next := g.Generate()
		req.Greater(next, prev)
		prev = next
	}
}
