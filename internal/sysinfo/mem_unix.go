//go:build unix

package sysinfo

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// PeakMemoryKB returns the peak resident set size of the process in KB.
func PeakMemoryKB() (int64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, fmt.Errorf("getrusage: %w", err)
	}

	maxrss := int64(ru.Maxrss)
	// darwin reports bytes, everything else KB
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		maxrss /= 1024
	}
	return maxrss, nil
}
