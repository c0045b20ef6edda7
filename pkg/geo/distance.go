package geo

import (
	"errors"
	"math"
)

// WGS 84 ellipsoid.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1 / 298.257223563
	semiMinorAxis = semiMajorAxis * (1 - flattening)
)

const (
	vincentyTolerance  = 1e-12
	vincentyIterations = 200
)

var ErrNoConvergence = errors.New("vincenty formula failed to converge")

// Distance returns the geodesic distance between p and q in kilometres,
// computed with Vincenty's inverse formula on the WGS 84 ellipsoid.
// Nearly antipodal pairs can fail to converge; callers are expected to
// degrade that segment rather than abort the route.
func Distance(p, q Coordinate) (float64, error) {
	if p == q {
		return 0, nil
	}

	u1 := math.Atan((1 - flattening) * math.Tan(p.Lat*math.Pi/180))
	u2 := math.Atan((1 - flattening) * math.Tan(q.Lat*math.Pi/180))
	l := (q.Lon - p.Lon) * math.Pi / 180

	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := l
	var sinSigma, cosSigma, sigma, sinAlpha, cosSqAlpha, cos2SigmaM float64
	converged := false
	for i := 0; i < vincentyIterations; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Sqrt(math.Pow(cosU2*sinLambda, 2) +
			math.Pow(cosU1*sinU2-sinU1*cosU2*cosLambda, 2))
		if sinSigma == 0 {
			return 0, nil // coincident points
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha == 0 {
			cos2SigmaM = 0 // equatorial line
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}
		c := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		prev := lambda
		lambda = l + (1-c)*flattening*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-prev) < vincentyTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, ErrNoConvergence
	}

	uSq := cosSqAlpha * (semiMajorAxis*semiMajorAxis - semiMinorAxis*semiMinorAxis) /
		(semiMinorAxis * semiMinorAxis)
	a := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	b := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := b * sinSigma * (cos2SigmaM + b/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			b/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	meters := semiMinorAxis * a * (sigma - deltaSigma)
	return meters / 1000, nil
}

// Profile computes per-segment geodesic distances across an ordered point
// sequence along with the cumulative total. A segment whose distance cannot
// be computed is recorded as 0.0 so the segment slice stays aligned with
// consecutive point pairs: len(segments) == max(0, len(points)-1).
func Profile(points []Coordinate) (float64, []float64) {
	if len(points) < 2 {
		return 0, nil
	}
	segments := make([]float64, 0, len(points)-1)
	var total float64
	for i := 0; i < len(points)-1; i++ {
		d, err := Distance(points[i], points[i+1])
		if err != nil {
			segments = append(segments, 0)
			continue
		}
		segments = append(segments, d)
		total += d
	}
	return total, segments
}
