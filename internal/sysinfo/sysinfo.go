// Package sysinfo reports process resource usage for the run summary.
package sysinfo

import "errors"

var ErrUnsupported = errors.New("peak memory is not available on this platform")
