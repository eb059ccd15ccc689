package dlf

import (
	"errors"

	"github.com/geomodeling/go-dlf/internal/axis"
)

// Fatal design errors. Degenerate linear systems and short evaluation
// ranges are deliberately not errors: the former yield zero
// coefficients (and a worst-possible score), the latter a one-time
// warning.
var (
	// ErrInvalidAxis reports a spacing or shift specification with
	// neither one nor three elements.
	ErrInvalidAxis = axis.ErrInvalidSpec

	// ErrInvalidTransform reports a transform pair that cannot be used
	// where it was supplied, for instance the joint J0/J1 pair among
	// the inversion pairs.
	ErrInvalidTransform = errors.New("invalid transform pair")

	// ErrNotFound reports a filter name absent from a store.
	ErrNotFound = errors.New("filter not found")
)
