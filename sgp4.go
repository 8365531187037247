package sgp4sdp4

import "math"

// nearEarth is the SGP4 state of one satellite with a period under 225
// minutes. Coefficients are computed on the first propagation and reused.
type nearEarth struct {
	secular
	initialized   bool
	isSimpleOrbit bool // Perigee below 220 km: drag truncated to linear in sqrt(a)

	c5, omgcof, xmcof   float64
	delmo, sinmo        float64
	d2, d3, d4          float64
	t3cof, t4cof, t5cof float64
}

func (p *nearEarth) init(e Elements) {
	p.secular = newSecular(e)
	p.initialized = true

	// For perigee less than 220 kilometers the equations are truncated to
	// linear variation in sqrt a and quadratic variation in mean anomaly.
	// The c3, delta omega and delta m terms are dropped.
	p.isSimpleOrbit = p.aodp*(1-e.Eo)/ae < 220/xkmper+ae

	c3 := p.coef * p.tsi * a3ovk2 * p.xnodp * ae * p.sinio / e.Eo
	p.c5 = 2 * p.coef1 * p.aodp * p.betao2 * (1 + 2.75*(p.etasq+p.eeta) + p.eeta*p.etasq)
	p.omgcof = e.Bstar * c3 * math.Cos(e.Omegao)
	p.xmcof = -tothrd * p.coef * e.Bstar * ae / p.eeta
	p.delmo = math.Pow(1+p.eta*math.Cos(e.Xmo), 3)
	p.sinmo = math.Sin(e.Xmo)

	if !p.isSimpleOrbit {
		c1sq := p.c1 * p.c1
		p.d2 = 4 * p.aodp * p.tsi * c1sq
		temp := p.d2 * p.tsi * p.c1 / 3
		p.d3 = (17*p.aodp + p.s4) * temp
		p.d4 = 0.5 * temp * p.aodp * p.tsi * (221*p.aodp + 31*p.s4) * p.c1
		p.t3cof = p.d2 + 2*c1sq
		p.t4cof = 0.25 * (3*p.d3 + p.c1*(12*p.d2+10*c1sq))
		p.t5cof = 0.2 * (3*p.d4 + 12*p.c1*p.d3 + 6*p.d2*p.d2 + 15*c1sq*(2*p.d2+c1sq))
	}
}

// propagate returns the state tsince minutes after the element set epoch.
func (p *nearEarth) propagate(e Elements, tsince float64) State {
	if !p.initialized {
		p.init(e)
	}

	// Update for secular gravity and atmospheric drag
	xmdf := e.Xmo + p.xmdot*tsince
	omgadf := e.Omegao + p.omgdot*tsince
	xnoddf := e.Xnodeo + p.xnodot*tsince
	omega := omgadf
	xmp := xmdf
	tsq := tsince * tsince
	xnode := xnoddf + p.xnodcf*tsq
	tempa := 1 - p.c1*tsince
	tempe := e.Bstar * p.c4 * tsince
	templ := p.t2cof * tsq
	if !p.isSimpleOrbit {
		delomg := p.omgcof * tsince
		delm := p.xmcof * (math.Pow(1+p.eta*math.Cos(xmdf), 3) - p.delmo)
		temp := delomg + delm
		xmp = xmdf + temp
		omega = omgadf - temp
		tcube := tsq * tsince
		tfour := tsince * tcube
		tempa = tempa - p.d2*tsq - p.d3*tcube - p.d4*tfour
		tempe = tempe + e.Bstar*p.c5*(math.Sin(xmp)-p.sinmo)
		templ = templ + p.t3cof*tcube + tfour*(p.t4cof+tsince*p.t5cof)
	}

	return p.finish(tsince, meanElements{
		a:      p.aodp * tempa * tempa,
		e:      e.Eo - tempe,
		omega:  omega,
		omgadf: omgadf,
		xl:     xmp + omega + xnode + p.xnodp*templ,
		xnode:  xnode,
		xinc:   e.Xincl,
	})
}

func (p *nearEarth) coefficients(e Elements) Coefficients {
	if !p.initialized {
		p.init(e)
	}
	c := p.secular.coefficients()
	c.Simple = p.isSimpleOrbit
	return c
}
