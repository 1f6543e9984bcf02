package bitbuf

import "errors"

var (
	errInvalidBitGroups = errors.New("bitbuf: fromBits and toBits must be in [1, 8]")
	errBadPadding       = errors.New("bitbuf: non-zero or oversized trailing bit group")
)
