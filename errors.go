package streamring

import "errors"

// Setup errors. Open returns ErrDisabled or ErrNoSourceSize, and on either
// the filter is not installed. SetPosition returns ErrSeekUnsupported when
// the source cannot seek. No function in this package returns
// ErrAlreadyWrapped.
var (
	ErrDisabled        = errors.New("streamring: filter disabled by configuration")
	ErrNoSourceSize    = errors.New("streamring: source has unknown or zero size")
	ErrAlreadyWrapped  = errors.New("streamring: source already wraps a ring filter")
	ErrSeekUnsupported = errors.New("streamring: source does not support seeking")
)

// Runtime terminal errors. Once either is observed, the filter does not
// recover locally; every subsequent Read/Peek returns it until Close.
var (
	ErrAborted      = errors.New("streamring: aborted")
	ErrSourceFailed = errors.New("streamring: source read or seek failed")
	ErrFilterClosed = errors.New("streamring: filter closed")
)
