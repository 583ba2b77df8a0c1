// Package process terminates browser process trees left behind by the launcher.
package process

import "errors"

// ErrInvalidPID is returned for pid <= 0, which would address the caller's own
// process group on unix.
var ErrInvalidPID = errors.New("invalid pid")
