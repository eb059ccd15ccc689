package dlf

import (
	"math"
	"math/cmplx"
)

// mu0 is the magnetic permeability of free space (H/m), used by the
// full-space electromagnetic transform pairs.
const mu0 = 4 * math.Pi * 1e-7

// Analytic transform-pair catalogue. The pairs follow the classic
// filter-design literature: the Gaussian and exponential pairs of
// Anderson (1975), the J0 pair of Guptasarma & Singh (1997), and the
// complex-valued full-space pairs of Chave & Cox (1982).

// J0Pair1 returns the Hankel J0 pair
// x·exp(-a·x²)  <->  exp(-b²/(4a))/(2a).
func J0Pair1(a float64) TransformPair {
	return mustAnalytic(KernelJ0,
		func(x float64) complex128 {
			return complex(x*math.Exp(-a*x*x), 0)
		},
		func(b float64) complex128 {
			return complex(math.Exp(-b*b/(4*a))/(2*a), 0)
		})
}

// J0Pair2 returns the Hankel J0 pair
// exp(-a·x)  <->  1/sqrt(b² + a²).
func J0Pair2(a float64) TransformPair {
	return mustAnalytic(KernelJ0,
		func(x float64) complex128 {
			return complex(math.Exp(-a*x), 0)
		},
		func(b float64) complex128 {
			return complex(1/math.Sqrt(b*b+a*a), 0)
		})
}

// J0Pair3 returns the Hankel J0 pair
// x·exp(-a·x)  <->  a/(b² + a²)^1.5.
func J0Pair3(a float64) TransformPair {
	return mustAnalytic(KernelJ0,
		func(x float64) complex128 {
			return complex(x*math.Exp(-a*x), 0)
		},
		func(b float64) complex128 {
			return complex(a/math.Pow(b*b+a*a, 1.5), 0)
		})
}

// J0Pair4 returns the complex full-space Hankel J0 pair for a
// frequency freq (Hz), resistivity rho (Ohm.m) and vertical
// source-receiver distance z (m).
func J0Pair4(freq, rho, z float64) TransformPair {
	gam := cmplx.Sqrt(complex(0, 2*math.Pi*mu0*freq/rho))
	az := math.Abs(z)
	return mustAnalytic(KernelJ0,
		func(x float64) complex128 {
			beta := cmplx.Sqrt(complex(x*x, 0) + gam*gam)
			return complex(x, 0) * cmplx.Exp(-beta*complex(az, 0)) / beta
		},
		func(b float64) complex128 {
			r := math.Sqrt(b*b + z*z)
			return cmplx.Exp(-gam*complex(r, 0)) / complex(r, 0)
		})
}

// J0Pair5 returns the complex full-space Hankel J0 pair for the
// vertical field component, with the same parameters as J0Pair4.
func J0Pair5(freq, rho, z float64) TransformPair {
	gam := cmplx.Sqrt(complex(0, 2*math.Pi*mu0*freq/rho))
	az := math.Abs(z)
	return mustAnalytic(KernelJ0,
		func(x float64) complex128 {
			beta := cmplx.Sqrt(complex(x*x, 0) + gam*gam)
			return complex(x, 0) * cmplx.Exp(-beta*complex(az, 0))
		},
		func(b float64) complex128 {
			r := math.Sqrt(b*b + z*z)
			gr := gam * complex(r, 0)
			return complex(az, 0) * (gr + 1) * cmplx.Exp(-gr) / complex(r*r*r, 0)
		})
}

// J1Pair1 returns the Hankel J1 pair
// x²·exp(-a·x²)  <->  b/(4a²)·exp(-b²/(4a)).
func J1Pair1(a float64) TransformPair {
	return mustAnalytic(KernelJ1,
		func(x float64) complex128 {
			return complex(x*x*math.Exp(-a*x*x), 0)
		},
		func(b float64) complex128 {
			return complex(b/(4*a*a)*math.Exp(-b*b/(4*a)), 0)
		})
}

// J1Pair2 returns the Hankel J1 pair
// exp(-a·x)  <->  (sqrt(b² + a²) - a)/(b·sqrt(b² + a²)).
func J1Pair2(a float64) TransformPair {
	return mustAnalytic(KernelJ1,
		func(x float64) complex128 {
			return complex(math.Exp(-a*x), 0)
		},
		func(b float64) complex128 {
			root := math.Sqrt(b*b + a*a)
			return complex((root-a)/(b*root), 0)
		})
}

// J1Pair3 returns the Hankel J1 pair
// x·exp(-a·x)  <->  b/(b² + a²)^1.5.
func J1Pair3(a float64) TransformPair {
	return mustAnalytic(KernelJ1,
		func(x float64) complex128 {
			return complex(x*math.Exp(-a*x), 0)
		},
		func(b float64) complex128 {
			return complex(b/math.Pow(b*b+a*a, 1.5), 0)
		})
}

// J1Pair4 returns the complex full-space Hankel J1 pair for a
// frequency freq (Hz), resistivity rho (Ohm.m) and vertical
// source-receiver distance z (m).
func J1Pair4(freq, rho, z float64) TransformPair {
	gam := cmplx.Sqrt(complex(0, 2*math.Pi*mu0*freq/rho))
	az := math.Abs(z)
	return mustAnalytic(KernelJ1,
		func(x float64) complex128 {
			beta := cmplx.Sqrt(complex(x*x, 0) + gam*gam)
			return complex(x*x, 0) * cmplx.Exp(-beta*complex(az, 0)) / beta
		},
		func(b float64) complex128 {
			r := math.Sqrt(b*b + z*z)
			gr := gam * complex(r, 0)
			return complex(b, 0) * (gr + 1) * cmplx.Exp(-gr) / complex(r*r*r, 0)
		})
}

// J1Pair5 returns the complex full-space Hankel J1 pair for the
// vertical field component, with the same parameters as J1Pair4.
func J1Pair5(freq, rho, z float64) TransformPair {
	gam := cmplx.Sqrt(complex(0, 2*math.Pi*mu0*freq/rho))
	az := math.Abs(z)
	return mustAnalytic(KernelJ1,
		func(x float64) complex128 {
			beta := cmplx.Sqrt(complex(x*x, 0) + gam*gam)
			return complex(x*x, 0) * cmplx.Exp(-beta*complex(az, 0))
		},
		func(b float64) complex128 {
			r := math.Sqrt(b*b + z*z)
			gr := gam * complex(r, 0)
			return complex(az*b, 0) * (gr*gr + 3*gr + 3) * cmplx.Exp(-gr) / complex(math.Pow(r, 5), 0)
		})
}

// SinPair1 returns the Fourier sine pair
// x·exp(-a²·x²)  <->  sqrt(π)·b·exp(-b²/(4a²))/(4a³).
func SinPair1(a float64) TransformPair {
	return mustAnalytic(KernelSin,
		func(x float64) complex128 {
			return complex(x*math.Exp(-a*a*x*x), 0)
		},
		func(b float64) complex128 {
			return complex(math.SqrtPi*b*math.Exp(-b*b/(4*a*a))/(4*a*a*a), 0)
		})
}

// SinPair2 returns the Fourier sine pair
// exp(-a·x)  <->  b/(b² + a²).
func SinPair2(a float64) TransformPair {
	return mustAnalytic(KernelSin,
		func(x float64) complex128 {
			return complex(math.Exp(-a*x), 0)
		},
		func(b float64) complex128 {
			return complex(b/(b*b+a*a), 0)
		})
}

// SinPair3 returns the Fourier sine pair
// x/(a² + x²)  <->  π·exp(-a·b)/2.
func SinPair3(a float64) TransformPair {
	return mustAnalytic(KernelSin,
		func(x float64) complex128 {
			return complex(x/(a*a+x*x), 0)
		},
		func(b float64) complex128 {
			return complex(math.Pi*math.Exp(-a*b)/2, 0)
		})
}

// CosPair1 returns the Fourier cosine pair
// exp(-a²·x²)  <->  sqrt(π)·exp(-b²/(4a²))/(2a).
func CosPair1(a float64) TransformPair {
	return mustAnalytic(KernelCos,
		func(x float64) complex128 {
			return complex(math.Exp(-a*a*x*x), 0)
		},
		func(b float64) complex128 {
			return complex(math.SqrtPi*math.Exp(-b*b/(4*a*a))/(2*a), 0)
		})
}

// CosPair2 returns the Fourier cosine pair
// exp(-a·x)  <->  a/(b² + a²).
func CosPair2(a float64) TransformPair {
	return mustAnalytic(KernelCos,
		func(x float64) complex128 {
			return complex(math.Exp(-a*x), 0)
		},
		func(b float64) complex128 {
			return complex(a/(b*b+a*a), 0)
		})
}

// CosPair3 returns the Fourier cosine pair
// 1/(a² + x²)  <->  π·exp(-a·b)/(2a).
func CosPair3(a float64) TransformPair {
	return mustAnalytic(KernelCos,
		func(x float64) complex128 {
			return complex(1/(a*a+x*x), 0)
		},
		func(b float64) complex128 {
			return complex(math.Pi*math.Exp(-a*b)/(2*a), 0)
		})
}

// mustAnalytic wraps NewAnalytic for the catalogue, whose kernels are
// known valid.
func mustAnalytic(kernel Kernel, lhs, rhs func(float64) complex128) TransformPair {
	p, err := NewAnalytic(kernel, lhs, rhs)
	if err != nil {
		panic(err)
	}
	return p
}
