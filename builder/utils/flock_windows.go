//go:build windows

package utils

import (
	"os"

	"golang.org/x/sys/windows"
)

// whole file: 0xFFFFFFFF for both low and high length parts
const lockRange = ^uint32(0)

func tryLock(file *os.File) error {
	var overlapped windows.Overlapped
	return windows.LockFileEx(
		windows.Handle(file.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0,
		lockRange,
		lockRange,
		&overlapped,
	)
}

func unlock(file *os.File) error {
	var overlapped windows.Overlapped
	return windows.UnlockFileEx(windows.Handle(file.Fd()), 0, lockRange, lockRange, &overlapped)
}
