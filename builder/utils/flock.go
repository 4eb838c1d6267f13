package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LockFile is created inside the cache directory
const LockFile = ".postsplit.lock"

// FileLock holds the run lock. The lock file itself is left on disk so every
// process locks the same inode.
type FileLock struct {
	file *os.File
	path string
}

// AcquireRunLock takes a non-blocking exclusive lock so two runs never
// write the same outputs at once.
func AcquireRunLock(dir string) (*FileLock, error) {
	lockPath := filepath.Join(dir, LockFile)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}

	if err := tryLock(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("another run is in progress (lock file: %s)", lockPath)
	}

	// PID for debugging
	pid := fmt.Sprintf("%d\n%s", os.Getpid(), time.Now().Format(time.RFC3339))
	_ = file.Truncate(0)
	_, _ = file.WriteAt([]byte(pid), 0)

	return &FileLock{file: file, path: lockPath}, nil
}

func (fl *FileLock) Release() error {
	if fl.file == nil {
		return nil
	}

	_ = unlock(fl.file)
	err := fl.file.Close()
	fl.file = nil
	return err
}
