package sgp4sdp4

import "math"

// deepSpace is the SDP4 state of one satellite with a period of 225
// minutes or more.
type deepSpace struct {
	secular
	initialized bool
	args        deepArgs
	engine      deepEngine
}

func (p *deepSpace) init(e Elements) {
	p.secular = newSecular(e)
	p.initialized = true

	p.args = deepArgs{
		eosq:   p.eosq,
		sinio:  p.sinio,
		cosio:  p.cosio,
		betao:  p.betao,
		betao2: p.betao2,
		aodp:   p.aodp,
		theta2: p.theta2,
		sing:   math.Sin(e.Omegao),
		cosg:   math.Cos(e.Omegao),
		xmdot:  p.xmdot,
		omgdot: p.omgdot,
		xnodot: p.xnodot,
		xnodp:  p.xnodp,
	}
	p.engine.dpinit(e, &p.args)
}

// propagate returns the state tsince minutes after the element set epoch.
// The orientation reports the deep-space elements before the short-period
// corrections.
func (p *deepSpace) propagate(e Elements, tsince float64) State {
	if !p.initialized {
		p.init(e)
	}
	a := &p.args

	// Update for secular gravity and atmospheric drag
	xmdf := e.Xmo + p.xmdot*tsince
	a.omgadf = e.Omegao + p.omgdot*tsince
	xnoddf := e.Xnodeo + p.xnodot*tsince
	tsq := tsince * tsince
	a.xnode = xnoddf + p.xnodcf*tsq
	tempa := 1 - p.c1*tsince
	tempe := e.Bstar * p.c4 * tsince
	templ := p.t2cof * tsq
	a.xn = p.xnodp

	a.xll = xmdf
	a.t = tsince
	p.engine.dpsec(e, a)
	xmdf = a.xll

	am := math.Pow(xke/a.xn, tothrd) * tempa * tempa
	a.em = a.em - tempe
	xmam := xmdf + p.xnodp*templ

	a.xll = xmam
	p.engine.dpper(a)
	xmam = a.xll

	st := p.finish(tsince, meanElements{
		a:      am,
		e:      a.em,
		omega:  a.omgadf,
		omgadf: a.omgadf,
		xl:     xmam + a.omgadf + a.xnode,
		xnode:  a.xnode,
		xinc:   a.xinc,
	})
	st.Orientation = Orientation{
		ArgPerigee:  a.omgadf,
		Inclination: a.xinc,
		RAAN:        a.xnode,
	}
	return st
}

func (p *deepSpace) coefficients(e Elements) Coefficients {
	if !p.initialized {
		p.init(e)
	}
	return p.secular.coefficients()
}

func (p *deepSpace) resonance(e Elements) Resonance {
	if !p.initialized {
		p.init(e)
	}
	return p.engine.resonance()
}
