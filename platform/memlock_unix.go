//go:build linux || darwin

package platform

import "golang.org/x/sys/unix"

// LockMemory pins a buffer so it cannot be swapped to disk.
func LockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Mlock(b)
}

// UnlockMemory releases a pin taken by LockMemory. The buffer should be
// zeroized first.
func UnlockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Munlock(b)
}
