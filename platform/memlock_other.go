//go:build !linux && !darwin

package platform

func LockMemory(b []byte) error   { return nil }
func UnlockMemory(b []byte) error { return nil }
