package utils

import "golang.org/x/sys/unix"

// DiskAvailable reports the bytes available to an unprivileged caller on the
// filesystem holding path.
func DiskAvailable(path string) (uint64, error) {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return 0, err
	}
	return fs.Bavail * uint64(fs.Bsize), nil
}
