//go:build !unix

package sysinfo

func PeakMemoryKB() (int64, error) {
	return 0, ErrUnsupported
}
