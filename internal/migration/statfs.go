package migration

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// freeBytes reports the free space of the filesystem that would hold path,
// walking up to the nearest existing ancestor. Returns 0 when the query
// fails; callers treat 0 as "unknown", not "full".
func freeBytes(path string) int64 {
	for {
		var stat unix.Statfs_t
		if err := unix.Statfs(path, &stat); err == nil {
			return int64(stat.Bavail) * int64(stat.Bsize)
		}
		parent := filepath.Dir(path)
		if parent == path {
			return 0
		}
		path = parent
	}
}
