package script

import "errors"

// ErrClosed is returned by calls on a closed hook.
var ErrClosed = errors.New("script: hook closed")
