package common

import "errors"

// ErrInvalidArgument is wrapped by every validation failure a solver
// returns before its first iteration. Use errors.Is to detect it.
var ErrInvalidArgument = errors.New("invalid argument")
