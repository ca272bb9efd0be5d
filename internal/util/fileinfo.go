package util

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FileInfo identifies a version of a file on disk.
type FileInfo struct {
	ModTime int64  // Last modification time, nanoseconds
	Size    int64  // File size in bytes
	Inode   uint64 // Inode number
}

// Same reports whether two infos describe the same file version.
func (f FileInfo) Same(other FileInfo) bool {
	return f == other
}

// GetFileInfo reads the identity of a file via stat(2).
// Supported on Linux and macOS.
func GetFileInfo(filepath string) (*FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Stat(filepath, &st); err != nil {
		return nil, fmt.Errorf("stat %s: %w", filepath, err)
	}

	sec, nsec := st.Mtim.Unix()
	return &FileInfo{
		ModTime: sec*1e9 + nsec,
		Size:    st.Size,
		Inode:   uint64(st.Ino),
	}, nil
}
