package utils

import "sync"

var gdalMu sync.Mutex

// ExecuteWithMutex serializes GDAL dataset opens and creates, which share
// library-wide error state and are not safe to run concurrently.
func ExecuteWithMutex(fn func()) {
	gdalMu.Lock()
	defer gdalMu.Unlock()
	fn()
}
