package pipeline

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// runLock guards the derived output paths of one run against a second
// transcriptor instance targeting the same files.
type runLock struct {
	lock *flock.Flock
}

// acquireRunLock takes a non-blocking lock on <audioPath>.lock. A held lock
// fails immediately instead of queueing behind the other instance.
func acquireRunLock(audioPath string) (*runLock, error) {
	path := audioPath + ".lock"
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another transcriptor run is already processing %s (lock %s held)", audioPath, path)
	}
	return &runLock{lock: fl}, nil
}

// Release unlocks and removes the lock file.
func (l *runLock) Release() {
	if l == nil || l.lock == nil {
		return
	}
	_ = l.lock.Unlock()
	_ = os.Remove(l.lock.Path())
}
