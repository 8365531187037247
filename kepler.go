package sgp4sdp4

import "math"

// keplerMaxIterations bounds the Kepler solver. The last estimate is
// accepted silently when the bound is hit.
const keplerMaxIterations = 10

// solveKepler solves Kepler's equation for the eccentric longitude, starting
// from capu, the mean longitude measured from the node. axn and ayn are the
// equinoctial eccentricity components. It returns the sine and cosine of the
// last evaluated estimate and the number of evaluations performed.
func solveKepler(capu, axn, ayn float64) (sinepw, cosepw float64, iterations int) {
	temp2 := capu
	for iterations = 1; ; iterations++ {
		sinepw, cosepw = math.Sin(temp2), math.Cos(temp2)
		epw := (capu-ayn*cosepw+axn*sinepw-temp2)/(1-axn*cosepw-ayn*sinepw) + temp2
		if math.Abs(epw-temp2) <= e6a || iterations > keplerMaxIterations {
			return sinepw, cosepw, iterations
		}
		temp2 = epw
	}
}

// meanElements are the secularly and periodically updated elements at the
// requested time, ready for the long-period, Kepler and short-period stages.
type meanElements struct {
	a      float64 // Semi-major axis (er)
	e      float64 // Eccentricity
	omega  float64 // Argument of perigee for the long-period terms
	omgadf float64 // Argument of perigee reported in the phase
	xl     float64 // Mean longitude
	xnode  float64 // Right ascension of ascending node
	xinc   float64 // Inclination
}

// finish applies the long-period periodics, solves Kepler's equation, adds
// the short-period corrections and builds the inertial state. The returned
// orientation holds the short-period corrected inclination and node.
func (c *secular) finish(tsince float64, m meanElements) State {
	beta := math.Sqrt(1 - m.e*m.e)
	xn := xke / math.Pow(m.a, 1.5)

	// Long period periodics
	axn := m.e * math.Cos(m.omega)
	temp := 1 / (m.a * beta * beta)
	xll := temp * c.xlcof * axn
	aynl := temp * c.aycof
	xlt := m.xl + xll
	ayn := m.e*math.Sin(m.omega) + aynl

	capu := NormalizeAngle2Pi(xlt - m.xnode)
	sinepw, cosepw, _ := solveKepler(capu, axn, ayn)

	// Short period preliminary quantities
	ecose := axn*cosepw + ayn*sinepw
	esine := axn*sinepw - ayn*cosepw
	elsq := axn*axn + ayn*ayn
	temp = 1 - elsq
	pl := m.a * temp
	r := m.a * (1 - ecose)
	temp1 := 1 / r
	rdot := xke * math.Sqrt(m.a) * esine * temp1
	rfdot := xke * math.Sqrt(pl) * temp1
	temp2 := m.a * temp1
	betal := math.Sqrt(temp)
	temp3 := 1 / (1 + betal)
	cosu := temp2 * (cosepw - axn + ayn*esine*temp3)
	sinu := temp2 * (sinepw - ayn - axn*esine*temp3)
	u := ArcTan2(sinu, cosu)
	sin2u := 2 * sinu * cosu
	cos2u := 2*cosu*cosu - 1
	temp = 1 / pl
	temp1 = ck2 * temp
	temp2 = temp1 * temp

	// Update for short periodics
	rk := r*(1-1.5*temp2*betal*c.x3thm1) + 0.5*temp1*c.x1mth2*cos2u
	uk := u - 0.25*temp2*c.x7thm1*sin2u
	xnodek := m.xnode + 1.5*temp2*c.cosio*sin2u
	xinck := m.xinc + 1.5*temp2*c.cosio*c.sinio*cos2u
	rdotk := rdot - xn*temp1*c.x1mth2*sin2u
	rfdotk := rfdot + xn*temp1*(c.x1mth2*cos2u+1.5*c.x3thm1)

	// Orientation vectors
	sinuk, cosuk := math.Sin(uk), math.Cos(uk)
	sinik, cosik := math.Sin(xinck), math.Cos(xinck)
	sinnok, cosnok := math.Sin(xnodek), math.Cos(xnodek)
	xmx := -sinnok * cosik
	xmy := cosnok * cosik
	u3 := Vector{X: xmx*sinuk + cosnok*cosuk, Y: xmy*sinuk + sinnok*cosuk, Z: sinik * sinuk}
	v3 := Vector{X: xmx*cosuk - cosnok*sinuk, Y: xmy*cosuk - sinnok*sinuk, Z: sinik * cosuk}

	phase := xlt - m.xnode - m.omgadf + twoPi
	if phase < 0 {
		phase += twoPi
	}

	return State{
		Tsince:   tsince,
		Position: u3.Scale(rk),
		Velocity: Vector{
			X: rdotk*u3.X + rfdotk*v3.X,
			Y: rdotk*u3.Y + rfdotk*v3.Y,
			Z: rdotk*u3.Z + rfdotk*v3.Z,
		},
		Phase: NormalizeAngle2Pi(phase),
		Orientation: Orientation{
			ArgPerigee:  m.omega,
			Inclination: xinck,
			RAAN:        xnodek,
		},
	}
}
