//go:build !windows
// +build !windows

package sysinfo

import "syscall"

// rootDisk reports total and free bytes on the root filesystem.
func rootDisk() (total, free uint64) {
	var st syscall.Statfs_t
	if err := syscall.Statfs("/", &st); err != nil {
		return 0, 0
	}
	bsize := uint64(st.Bsize)
	return st.Blocks * bsize, st.Bavail * bsize
}
