package fixtures

import "errors"

// ErrTooFewTimepoints indicates that a topology's size parameter (n, rows,
// cols) is smaller than the minimum that topology requires.
var ErrTooFewTimepoints = errors.New("fixtures: too few timepoints")
