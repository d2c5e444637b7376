package bridge

import (
	"errors"
	"fmt"

	"github.com/codahale/hashbridge"
)

// ErrInternal is returned when a boundary call fails for a reason outside the error taxonomy, such as a recovered
// panic. The module remains usable.
var ErrInternal = errors.New("bridge: internal error")

// Code is a status code suitable for returning across a foreign-function boundary.
type Code int32

// Status codes. Values are stable.
const (
	OK                      Code = 0
	UnsupportedAlgorithm    Code = 1
	InvalidConstructionArgs Code = 2
	BufferTooSmall          Code = 3
	UseAfterRelease         Code = 4
	SeekOutOfRange          Code = 5
	Internal                Code = -1
)

var codes = []struct {
	err  error
	code Code
}{
	{hashbridge.ErrUnsupportedAlgorithm, UnsupportedAlgorithm},
	{hashbridge.ErrInvalidConstructionArgs, InvalidConstructionArgs},
	{hashbridge.ErrBufferTooSmall, BufferTooSmall},
	{hashbridge.ErrUseAfterRelease, UseAfterRelease},
	{hashbridge.ErrSeekOutOfRange, SeekOutOfRange},
}

// Status maps err onto a status code. A nil error is OK; errors outside the taxonomy are Internal.
func Status(err error) Code {
	if err == nil {
		return OK
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return Internal
}

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case UnsupportedAlgorithm:
		return "unsupported algorithm"
	case InvalidConstructionArgs:
		return "invalid construction arguments"
	case BufferTooSmall:
		return "buffer too small"
	case UseAfterRelease:
		return "use after release"
	case SeekOutOfRange:
		return "seek out of range"
	case Internal:
		return "internal error"
	default:
		return fmt.Sprintf("Code(%d)", int32(c))
	}
}
