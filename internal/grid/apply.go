package grid

import (
	"runtime"
	"sync"

	"github.com/gammazero/workerpool"
)

// ApplyRows runs fn once per row index on a worker pool sized to the host
// CPU count. Callers must make fn write only to the row it was given; input
// grids are read-only so no further synchronization is needed. The first
// error wins, remaining rows still run to completion.
func ApplyRows(height int, fn func(y int) error) error {
	workers := runtime.NumCPU()
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}
	wp := workerpool.New(workers)

	errChan := make(chan error, 1)
	var firstErr sync.Once

	for y := 0; y < height; y++ {
		row := y
		wp.Submit(func() {
			if err := fn(row); err != nil {
				firstErr.Do(func() { errChan <- err })
			}
		})
	}

	go func() {
		wp.StopWait()
		close(errChan)
	}()

	return <-errChan
}
