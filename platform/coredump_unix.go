//go:build linux || darwin

package platform

import "golang.org/x/sys/unix"

// DisableCoreDumps sets the core dump size limit to zero so a crash
// cannot write decrypted secrets to disk.
func DisableCoreDumps() error {
	var rlim unix.Rlimit
	rlim.Cur = 0
	rlim.Max = 0
	return unix.Setrlimit(unix.RLIMIT_CORE, &rlim)
}
