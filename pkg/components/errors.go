package components

import "errors"

var errNilImage = errors.New("decoder returned no image")
