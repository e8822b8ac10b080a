package ocr

import "errors"

// ErrNoText is returned when recognition produces an empty string.
var ErrNoText = errors.New("no text recognized")
