package systems

import "gonum.org/v1/gonum/spatial/r2"

// nearZero is the displacement magnitude below which an agent does not move.
const nearZero = 1e-9

// clampFloat clamps a value between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// distance returns the Euclidean distance between two points.
func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// scaledUnit returns v normalized and scaled to length, or the zero vector
// when v is too short to normalize.
func scaledUnit(v r2.Vec, length float64) r2.Vec {
	if r2.Norm(v) <= nearZero {
		return r2.Vec{}
	}
	return r2.Scale(length, r2.Unit(v))
}
