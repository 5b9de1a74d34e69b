package sealkit

import "errors"

var ErrInvalidConfig = errors.New("invalid sealkit configuration")
