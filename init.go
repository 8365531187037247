package sgp4sdp4

import "math"

// secular holds the epoch-derived coefficients both propagators share:
// the recovered mean motion and semi-major axis, the atmospheric density
// parameters and the drag and gravity secular rates.
type secular struct {
	cosio, sinio, theta2   float64
	x3thm1, x1mth2, x7thm1 float64
	eosq, betao, betao2    float64
	xnodp, aodp            float64 // Recovered mean motion (rad/min) and semi-major axis (er)
	perigee                float64 // Perigee height (km)
	s4, qoms24             float64
	tsi, eta, etasq, eeta  float64
	coef, coef1            float64
	c1, c4                 float64
	xmdot, omgdot, xnodot  float64
	xnodcf, t2cof          float64
	xlcof, aycof           float64
}

// atmosphere returns the density function parameters s4 and qoms24 for a
// perigee height in km. Below 156 km the reference altitude follows the
// perigee, held at 20 km once the perigee is 98 km or lower.
func atmosphere(perigee float64) (s4, qoms24 float64) {
	if perigee >= 156 {
		return sDrag, qoms2t
	}
	s := perigee - 78
	if perigee <= 98 {
		s = 20
	}
	return s/xkmper + ae, math.Pow((120-s)*ae/xkmper, 4)
}

// newSecular computes the coefficients that depend only on the epoch elements.
func newSecular(e Elements) secular {
	var c secular
	c.cosio = math.Cos(e.Xincl)
	c.sinio = math.Sin(e.Xincl)
	c.theta2 = c.cosio * c.cosio
	c.x3thm1 = 3*c.theta2 - 1
	c.x1mth2 = 1 - c.theta2
	c.x7thm1 = 7*c.theta2 - 1
	c.eosq = e.Eo * e.Eo
	c.betao2 = 1 - c.eosq
	c.betao = math.Sqrt(c.betao2)
	c.xnodp, c.aodp = e.recoverMeanMotion(initCubic)

	c.perigee = (c.aodp*(1-e.Eo) - ae) * xkmper
	c.s4, c.qoms24 = atmosphere(c.perigee)

	pinvsq := 1 / (c.aodp * c.aodp * c.betao2 * c.betao2)
	c.tsi = 1 / (c.aodp - c.s4)
	c.eta = c.aodp * e.Eo * c.tsi
	c.etasq = c.eta * c.eta
	c.eeta = e.Eo * c.eta
	psisq := math.Abs(1 - c.etasq)
	c.coef = c.qoms24 * math.Pow(c.tsi, 4)
	c.coef1 = c.coef / math.Pow(psisq, 3.5)

	c2 := c.coef1 * c.xnodp * (c.aodp*(1+1.5*c.etasq+c.eeta*(4+c.etasq)) +
		0.75*ck2*c.tsi/psisq*c.x3thm1*(8+3*c.etasq*(8+c.etasq)))
	c.c1 = e.Bstar * c2
	c.c4 = 2 * c.xnodp * c.coef1 * c.aodp * c.betao2 *
		(c.eta*(2+0.5*c.etasq) + e.Eo*(0.5+2*c.etasq) -
			2*ck2*c.tsi/(c.aodp*psisq)*
				(-3*c.x3thm1*(1-2*c.eeta+c.etasq*(1.5-0.5*c.eeta))+
					0.75*c.x1mth2*(2*c.etasq-c.eeta*(1+c.etasq))*math.Cos(2*e.Omegao)))

	theta4 := c.theta2 * c.theta2
	temp1 := 3 * ck2 * pinvsq * c.xnodp
	temp2 := temp1 * ck2 * pinvsq
	temp3 := 1.25 * ck4 * pinvsq * pinvsq * c.xnodp
	c.xmdot = c.xnodp + 0.5*temp1*c.betao*c.x3thm1 +
		0.0625*temp2*c.betao*(13-78*c.theta2+137*theta4)
	x1m5th := 1 - 5*c.theta2
	c.omgdot = -0.5*temp1*x1m5th + 0.0625*temp2*(7-114*c.theta2+395*theta4) +
		temp3*(3-36*c.theta2+49*theta4)
	xhdot1 := -temp1 * c.cosio
	c.xnodot = xhdot1 + (0.5*temp2*(4-19*c.theta2)+2*temp3*(3-7*c.theta2))*c.cosio
	c.xnodcf = 3.5 * c.betao2 * xhdot1 * c.c1
	c.t2cof = 1.5 * c.c1

	// Long period periodic coefficients; xlcof is singular for retrograde equatorial orbits.
	if math.Abs(c.cosio+1) > 1.5e-12 {
		c.xlcof = 0.125 * a3ovk2 * c.sinio * (3 + 5*c.cosio) / (1 + c.cosio)
	} else {
		c.xlcof = 0.125 * a3ovk2 * c.sinio * (3 + 5*c.cosio) / 1.5e-12
	}
	c.aycof = 0.25 * a3ovk2 * c.sinio
	return c
}

// Coefficients exposes the drag-related coefficients computed at
// initialization, for inspection and diagnostics.
type Coefficients struct {
	Xnodp   float64 // Recovered mean motion (rad/min)
	Aodp    float64 // Recovered semi-major axis (earth radii)
	Perigee float64 // Perigee height (km)
	S4      float64 // Density function reference altitude parameter (earth radii)
	Qoms24  float64 // Density function parameter (earth radii^4)
	C1      float64 // Drag coefficient
	Simple  bool    // Truncated drag terms, set for perigees under 220 km
}

func (c *secular) coefficients() Coefficients {
	return Coefficients{
		Xnodp:   c.xnodp,
		Aodp:    c.aodp,
		Perigee: c.perigee,
		S4:      c.s4,
		Qoms24:  c.qoms24,
		C1:      c.c1,
	}
}
