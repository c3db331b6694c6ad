package cluster

import (
	"runtime"
	"sync"

	"go.viam.com/utils"
)

// parallelOverPixels partitions [0, n) into per-CPU tiles and runs fn over
// each index, the same pixel-parallel pattern point.NewPointField uses
// (spec.md section 5).
func parallelOverPixels(n int, fn func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		utils.PanicCapturingGo(func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		})
	}
	wg.Wait()
}
