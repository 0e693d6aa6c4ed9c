package privacy

import (
	"math"
	"math/rand"
)

// sampleLaplace draws from Laplace(0, scale) by inverse transform:
// CDF^(-1)(p) = -b*sign(p-0.5)*ln(1-2*|p-0.5|).
func sampleLaplace(rng *rand.Rand, scale float64) float64 {
	u := rng.Float64()
	if u < 0.5 {
		return scale * math.Log(2*u)
	}
	return -scale * math.Log(2*(1-u))
}

// sampleGaussian draws from Normal(0, scale).
func sampleGaussian(rng *rand.Rand, scale float64) float64 {
	return scale * rng.NormFloat64()
}

// gaussianScale is the analytic Gaussian mechanism calibration:
// sensitivity * sqrt(2*ln(1.25/delta)) / epsilon.
func gaussianScale(sensitivity, epsilon, delta float64) float64 {
	return sensitivity * math.Sqrt(2*math.Log(1.25/delta)) / epsilon
}
