package organizer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".mangabatch.lock"

// AcquireSeriesLock takes a non-blocking exclusive lock on the series
// folder so two processing runs cannot interleave their moves. The
// returned release func unlocks and removes the lock file.
func AcquireSeriesLock(seriesDir string) (func(), error) {
	lockPath := filepath.Join(seriesDir, lockFileName)
	fl := flock.New(lockPath)

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock series folder %s: %w", seriesDir, err)
	}
	if !locked {
		return nil, fmt.Errorf("another run is already processing %s", seriesDir)
	}

	release := func() {
		fl.Unlock()
		os.Remove(lockPath)
	}
	return release, nil
}
