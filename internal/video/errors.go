package video

import "errors"

var (
	// ErrDecode tags failures reading frames from the codec backend, including
	// sources that stay unreadable after the one-shot remediation.
	ErrDecode = errors.New("decode error")

	// ErrEncode tags failures creating or writing output artifacts. Encode
	// failures are fatal to the run; artifacts already written stay on disk.
	ErrEncode = errors.New("encode error")
)
