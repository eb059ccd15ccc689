package dlf

// Convenience designers for the common kernels, using the Gaussian
// transform pairs with unit parameter. They search the supplied
// spacing/shift axes silently and return only the filter; use Design
// directly for full control and the search result.

// DesignHankelJ0 designs a Hankel J0 filter of length n.
func DesignHankelJ0(n int, spacing, shift AxisSpec) (*Filter, error) {
	return designWith(n, spacing, shift, J0Pair1(1))
}

// DesignHankelJ1 designs a Hankel J1 filter of length n.
func DesignHankelJ1(n int, spacing, shift AxisSpec) (*Filter, error) {
	return designWith(n, spacing, shift, J1Pair1(1))
}

// DesignFourierSin designs a Fourier sine filter of length n.
func DesignFourierSin(n int, spacing, shift AxisSpec) (*Filter, error) {
	return designWith(n, spacing, shift, SinPair1(1))
}

// DesignFourierCos designs a Fourier cosine filter of length n.
func DesignFourierCos(n int, spacing, shift AxisSpec) (*Filter, error) {
	return designWith(n, spacing, shift, CosPair1(1))
}

func designWith(n int, spacing, shift AxisSpec, pair TransformPair) (*Filter, error) {
	filt, _, err := Design(&Config{
		Length:    n,
		Spacing:   spacing,
		Shift:     shift,
		Inversion: []TransformPair{pair},
	})
	return filt, err
}
