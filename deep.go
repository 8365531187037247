package sgp4sdp4

import (
	"fmt"
	"math"
)

// Resonance classifies the geopotential resonance a deep-space orbit is
// subject to.
type Resonance int

const (
	NoResonance          Resonance = iota // Outside both resonance bands
	SynchronousResonance                  // One revolution per day
	HalfDayResonance                      // Two revolutions per day with e >= 0.5
)

func (r Resonance) String() string {
	switch r {
	case NoResonance:
		return "none"
	case SynchronousResonance:
		return "synchronous"
	case HalfDayResonance:
		return "12-hour"
	}
	return fmt.Sprintf("Resonance(%d)", int(r))
}

// Resonance integrator step sizes, in minutes, and the half squared step.
const (
	stepp = 720.0
	stepn = -720.0
	step2 = 259200.0
)

// Synchronous resonance phase angles
const (
	fasx2 = 0.13130908
	fasx4 = 2.8843198
	fasx6 = 0.37448087
)

// deepArgs carries the quantities the deep-space propagator and the
// lunar-solar engine exchange. The first group is fixed at initialization,
// the second is rewritten on every propagation.
type deepArgs struct {
	eosq, sinio, cosio, betao, betao2 float64
	aodp, theta2, sing, cosg          float64
	xmdot, omgdot, xnodot, xnodp      float64
	ds50                              float64

	xll, omgadf, xnode float64
	em, xinc, xn, t    float64
}

// deepPhase records the last entry into the engine so that calls out of
// order are caught.
type deepPhase int

const (
	phaseNone deepPhase = iota
	phaseInit
	phaseSecular
	phasePeriodic
)

func (p deepPhase) String() string {
	switch p {
	case phaseNone:
		return "none"
	case phaseInit:
		return "dpinit"
	case phaseSecular:
		return "dpsec"
	case phasePeriodic:
		return "dpper"
	}
	return fmt.Sprintf("deepPhase(%d)", int(p))
}

// perturber describes the geometry of the sun or the moon relative to the
// equator, as consumed by lunisolarTerms.
type perturber struct {
	zcosg, zsing float64
	zcosi, zsini float64
	zcosh, zsinh float64
	cc, zn, ze   float64
}

// secularRates are the rates one perturbing body induces on the elements.
type secularRates struct {
	se, si, sl, sgh, sh float64
}

// periodicTerms are the amplitudes of one perturbing body's periodics.
type periodicTerms struct {
	e2, e3        float64
	i2, i3        float64
	l2, l3, l4    float64
	gh2, gh3, gh4 float64
	h2, h3        float64
}

// at evaluates the periodics for the body's mean anomaly zm and orbit
// eccentricity ze.
func (p *periodicTerms) at(zm, ze float64) (e, i, l, gh, h float64) {
	zf := zm + 2*ze*math.Sin(zm)
	sinzf := math.Sin(zf)
	f2 := 0.5*sinzf*sinzf - 0.25
	f3 := -0.5 * sinzf * math.Cos(zf)
	e = p.e2*f2 + p.e3*f3
	i = p.i2*f2 + p.i3*f3
	l = p.l2*f2 + p.l3*f3 + p.l4*sinzf
	gh = p.gh2*f2 + p.gh3*f3 + p.gh4*sinzf
	h = p.h2*f2 + p.h3*f3
	return e, i, l, gh, h
}

// deepEngine adds lunar and solar perturbations and geopotential resonance
// effects to a deep-space orbit. dpinit must run once, then every
// propagation calls dpsec followed by dpper.
type deepEngine struct {
	phase deepPhase

	thgr, xnq, xqncl, omegaq, omgdot float64
	zmol, zmos                       float64

	sse, ssi, ssl, ssg, ssh float64
	solar, lunar            periodicTerms

	// Periodics cache, refreshed when t moves by 30 minutes or more.
	savtsn                float64
	pe, pinc, pl, pgh, ph float64

	hasResonance           bool
	isSynchronousResonance bool
	del1, del2, del3       float64
	d2201, d2211           float64
	d3210, d3222           float64
	d4410, d4422           float64
	d5220, d5232           float64
	d5421, d5433           float64
	xlamo, xfact           float64

	// Resonance integrator state
	atime, xli, xni float64
}

func (d *deepEngine) expect(allowed ...deepPhase) {
	for _, p := range allowed {
		if d.phase == p {
			return
		}
	}
	panic(fmt.Sprintf("sgp4sdp4: deep-space engine called after %s, want one of %v", d.phase, allowed))
}

// resonance reports which resonance branch dpinit selected.
func (d *deepEngine) resonance() Resonance {
	switch {
	case !d.hasResonance:
		return NoResonance
	case d.isSynchronousResonance:
		return SynchronousResonance
	}
	return HalfDayResonance
}

// lunisolarTerms computes the secular rates and periodic amplitudes that
// the perturbing body b induces on the orbit.
func (d *deepEngine) lunisolarTerms(a *deepArgs, eq float64, b perturber) (r secularRates, p periodicTerms) {
	a1 := b.zcosg*b.zcosh + b.zsing*b.zcosi*b.zsinh
	a3 := -b.zsing*b.zcosh + b.zcosg*b.zcosi*b.zsinh
	a7 := -b.zcosg*b.zsinh + b.zsing*b.zcosi*b.zcosh
	a8 := b.zsing * b.zsini
	a9 := b.zsing*b.zsinh + b.zcosg*b.zcosi*b.zcosh
	a10 := b.zcosg * b.zsini
	a2 := a.cosio*a7 + a.sinio*a8
	a4 := a.cosio*a9 + a.sinio*a10
	a5 := -a.sinio*a7 + a.cosio*a8
	a6 := -a.sinio*a9 + a.cosio*a10
	x1 := a1*a.cosg + a2*a.sing
	x2 := a3*a.cosg + a4*a.sing
	x3 := -a1*a.sing + a2*a.cosg
	x4 := -a3*a.sing + a4*a.cosg
	x5 := a5 * a.sing
	x6 := a6 * a.sing
	x7 := a5 * a.cosg
	x8 := a6 * a.cosg
	z31 := 12*x1*x1 - 3*x3*x3
	z32 := 24*x1*x2 - 6*x3*x4
	z33 := 12*x2*x2 - 3*x4*x4
	z1 := 3*(a1*a1+a2*a2) + z31*a.eosq
	z2 := 6*(a1*a3+a2*a4) + z32*a.eosq
	z3 := 3*(a3*a3+a4*a4) + z33*a.eosq
	z11 := -6*a1*a5 + a.eosq*(-24*x1*x7-6*x3*x5)
	z12 := -6*(a1*a6+a3*a5) + a.eosq*(-24*(x2*x7+x1*x8)-6*(x3*x6+x4*x5))
	z13 := -6*a3*a6 + a.eosq*(-24*x2*x8-6*x4*x6)
	z21 := 6*a2*a5 + a.eosq*(24*x1*x5-6*x3*x7)
	z22 := 6*(a4*a5+a2*a6) + a.eosq*(24*(x2*x5+x1*x6)-6*(x4*x7+x3*x8))
	z23 := 6*a4*a6 + a.eosq*(24*x2*x6-6*x4*x8)
	z1 = z1 + z1 + a.betao2*z31
	z2 = z2 + z2 + a.betao2*z32
	z3 = z3 + z3 + a.betao2*z33

	xnoi := 1 / d.xnq
	s3 := b.cc * xnoi
	s2 := -0.5 * s3 / a.betao
	s4 := s3 * a.betao
	s1 := -15 * eq * s4
	s5 := x1*x3 + x2*x4
	s6 := x2*x3 + x1*x4
	s7 := x2*x4 - x1*x3

	r.se = s1 * b.zn * s5
	r.si = s2 * b.zn * (z11 + z13)
	r.sl = -b.zn * s3 * (z1 + z3 - 14 - 6*a.eosq)
	r.sgh = s4 * b.zn * (z31 + z33 - 6)
	r.sh = -b.zn * s2 * (z21 + z23)
	if d.xqncl < 5.2359877e-2 {
		r.sh = 0
	}

	p.e2 = 2 * s1 * s6
	p.e3 = 2 * s1 * s7
	p.i2 = 2 * s2 * z12
	p.i3 = 2 * s2 * (z13 - z11)
	p.l2 = -2 * s3 * z2
	p.l3 = -2 * s3 * (z3 - z1)
	p.l4 = -2 * s3 * (-21 - 9*a.eosq) * b.ze
	p.gh2 = 2 * s4 * z32
	p.gh3 = 2 * s4 * (z33 - z31)
	p.gh4 = -18 * s4 * b.ze
	p.h2 = -2 * s2 * z22
	p.h3 = -2 * s2 * (z23 - z21)
	return r, p
}

// dpinit computes the lunar-solar secular rates and periodic amplitudes,
// selects the resonance branch and resets the resonance integrator.
func (d *deepEngine) dpinit(e Elements, a *deepArgs) {
	d.expect(phaseNone)
	d.phase = phaseInit

	d.thgr, a.ds50 = ThetaG(e.Epoch)
	eq := e.Eo
	d.xnq = a.xnodp
	aqnv := 1 / a.aodp
	d.xqncl = e.Xincl
	xmao := e.Xmo
	xpidot := a.omgdot + a.xnodot
	sinq, cosq := math.Sin(e.Xnodeo), math.Cos(e.Xnodeo)
	d.omegaq = e.Omegao
	d.omgdot = a.omgdot

	// Lunar orbit geometry, from days since 1900 January 0.5
	day := a.ds50 + 18261.5
	xnodce := 4.5236020 - 9.2422029e-4*day
	stem, ctem := math.Sin(xnodce), math.Cos(xnodce)
	zcosil := 0.91375164 - 0.03568096*ctem
	zsinil := math.Sqrt(1 - zcosil*zcosil)
	zsinhl := 0.089683511 * stem / zsinil
	zcoshl := math.Sqrt(1 - zsinhl*zsinhl)
	c := 4.7199672 + 0.22997150*day
	gam := 5.8351514 + 0.0019443680*day
	d.zmol = NormalizeAngle2Pi(c - gam)
	zx := 0.39785416 * stem / zsinil
	zy := zcoshl*ctem + 0.91744867*zsinhl*stem
	zx = ArcTan2(zx, zy)
	zx = gam + zx - xnodce
	zcosgl, zsingl := math.Cos(zx), math.Sin(zx)
	d.zmos = NormalizeAngle2Pi(6.2565837 + 0.017201977*day)

	d.savtsn = 1e20

	// The same terms are computed for the sun, then for the moon.
	body := perturber{
		zcosg: zcosgs, zsing: zsings,
		zcosi: zcosis, zsini: zsinis,
		zcosh: cosq, zsinh: sinq,
		cc: c1ss, zn: zns, ze: zes,
	}
	lunarTermsDone := false
	for {
		r, p := d.lunisolarTerms(a, eq, body)
		if lunarTermsDone {
			d.lunar = p
			d.sse += r.se
			d.ssi += r.si
			d.ssl += r.sl
			d.ssg += r.sgh - a.cosio/a.sinio*r.sh
			d.ssh += r.sh / a.sinio
			break
		}
		d.solar = p
		d.sse = r.se
		d.ssi = r.si
		d.ssl = r.sl
		d.ssh = r.sh / a.sinio
		d.ssg = r.sgh - a.cosio*d.ssh
		body = perturber{
			zcosg: zcosgl, zsing: zsingl,
			zcosi: zcosil, zsini: zsinil,
			zcosh: zcoshl*cosq + zsinhl*sinq,
			zsinh: sinq*zcoshl - cosq*zsinhl,
			cc:    c1l, zn: znl, ze: zel,
		}
		lunarTermsDone = true
	}

	d.hasResonance = false
	d.isSynchronousResonance = false

	var bfact float64
	if d.xnq < 0.0052359877 && d.xnq > 0.0034906585 {
		d.hasResonance = true
		d.isSynchronousResonance = true

		g200 := 1 + a.eosq*(-2.5+0.8125*a.eosq)
		g310 := 1 + 2*a.eosq
		g300 := 1 + a.eosq*(-6+6.60937*a.eosq)
		f220 := 0.75 * (1 + a.cosio) * (1 + a.cosio)
		f311 := 0.9375*a.sinio*a.sinio*(1+3*a.cosio) - 0.75*(1+a.cosio)
		f330 := 1 + a.cosio
		f330 = 1.875 * f330 * f330 * f330
		d.del1 = 3 * d.xnq * d.xnq * aqnv * aqnv
		d.del2 = 2 * d.del1 * f220 * g200 * q22
		d.del3 = 3 * d.del1 * f330 * g300 * q33 * aqnv
		d.del1 = d.del1 * f311 * g310 * q31 * aqnv
		d.xlamo = xmao + e.Xnodeo + e.Omegao - d.thgr
		bfact = a.xmdot + xpidot - thdt
		bfact = bfact + d.ssl + d.ssg + d.ssh
	} else {
		if d.xnq < 0.00826 || d.xnq > 0.00924 || eq < 0.5 {
			return
		}
		d.hasResonance = true
		d.initHalfDay(e, a, eq, aqnv)
		d.xlamo = xmao + e.Xnodeo + e.Xnodeo - d.thgr - d.thgr
		bfact = a.xmdot + a.xnodot + a.xnodot - thdt - thdt
		bfact = bfact + d.ssl + d.ssh + d.ssh
	}

	d.xfact = bfact - d.xnq

	d.xli = d.xlamo
	d.xni = d.xnq
	d.atime = 0
}

// initHalfDay computes the resonance coefficients of 12-hour orbits, whose
// eccentricity functions are fitted piecewise in eq.
func (d *deepEngine) initHalfDay(e Elements, a *deepArgs, eq, aqnv float64) {
	var g211, g310, g322, g410, g422, g520, g521, g532, g533 float64
	eoc := eq * a.eosq
	g201 := -0.306 - (eq-0.64)*0.440
	if eq <= 0.65 {
		g211 = 3.616 - 13.247*eq + 16.290*a.eosq
		g310 = -19.302 + 117.390*eq - 228.419*a.eosq + 156.591*eoc
		g322 = -18.9068 + 109.7927*eq - 214.6334*a.eosq + 146.5816*eoc
		g410 = -41.122 + 242.694*eq - 471.094*a.eosq + 313.953*eoc
		g422 = -146.407 + 841.880*eq - 1629.014*a.eosq + 1083.435*eoc
		g520 = -532.114 + 3017.977*eq - 5740*a.eosq + 3708.276*eoc
	} else {
		g211 = -72.099 + 331.819*eq - 508.738*a.eosq + 266.724*eoc
		g310 = -346.844 + 1582.851*eq - 2415.925*a.eosq + 1246.113*eoc
		g322 = -342.585 + 1554.908*eq - 2366.899*a.eosq + 1215.972*eoc
		g410 = -1052.797 + 4758.686*eq - 7193.992*a.eosq + 3651.957*eoc
		g422 = -3581.69 + 16178.11*eq - 24462.77*a.eosq + 12422.52*eoc
		if eq <= 0.715 {
			g520 = 1464.74 - 4664.75*eq + 3763.64*a.eosq
		} else {
			g520 = -5149.66 + 29936.92*eq - 54087.36*a.eosq + 31324.56*eoc
		}
	}

	if eq < 0.7 {
		g533 = -919.2277 + 4988.61*eq - 9064.77*a.eosq + 5542.21*eoc
		g521 = -822.71072 + 4568.6173*eq - 8491.4146*a.eosq + 5337.524*eoc
		g532 = -853.666 + 4690.25*eq - 8624.77*a.eosq + 5341.4*eoc
	} else {
		g533 = -37995.78 + 161616.52*eq - 229838.2*a.eosq + 109377.94*eoc
		g521 = -51752.104 + 218913.95*eq - 309468.16*a.eosq + 146349.42*eoc
		g532 = -40023.88 + 170470.89*eq - 242699.48*a.eosq + 115605.82*eoc
	}

	sini2 := a.sinio * a.sinio
	f220 := 0.75 * (1 + 2*a.cosio + a.theta2)
	f221 := 1.5 * sini2
	f321 := 1.875 * a.sinio * (1 - 2*a.cosio - 3*a.theta2)
	f322 := -1.875 * a.sinio * (1 + 2*a.cosio - 3*a.theta2)
	f441 := 35 * sini2 * f220
	f442 := 39.3750 * sini2 * sini2
	f522 := 9.84375 * a.sinio * (sini2*(1-2*a.cosio-5*a.theta2) +
		0.33333333*(-2+4*a.cosio+6*a.theta2))
	f523 := a.sinio * (4.92187512*sini2*(-2-4*a.cosio+10*a.theta2) +
		6.56250012*(1+2*a.cosio-3*a.theta2))
	f542 := 29.53125 * a.sinio * (2 - 8*a.cosio +
		a.theta2*(-12+8*a.cosio+10*a.theta2))
	f543 := 29.53125 * a.sinio * (-2 - 8*a.cosio +
		a.theta2*(12+8*a.cosio-10*a.theta2))

	xno2 := d.xnq * d.xnq
	ainv2 := aqnv * aqnv
	temp1 := 3 * xno2 * ainv2
	temp := temp1 * root22
	d.d2201 = temp * f220 * g201
	d.d2211 = temp * f221 * g211
	temp1 = temp1 * aqnv
	temp = temp1 * root32
	d.d3210 = temp * f321 * g310
	d.d3222 = temp * f322 * g322
	temp1 = temp1 * aqnv
	temp = 2 * temp1 * root44
	d.d4410 = temp * f441 * g410
	d.d4422 = temp * f442 * g422
	temp1 = temp1 * aqnv
	temp = temp1 * root52
	d.d5220 = temp * f522 * g520
	d.d5232 = temp * f523 * g532
	temp = 2 * temp1 * root54
	d.d5421 = temp * f542 * g521
	d.d5433 = temp * f543 * g533
}

// dpsec applies the lunar-solar secular rates and, for resonant orbits,
// integrates the resonance terms from the integrator's current time to a.t.
func (d *deepEngine) dpsec(e Elements, a *deepArgs) {
	d.expect(phaseInit, phasePeriodic)
	d.phase = phaseSecular

	a.xll = a.xll + d.ssl*a.t
	a.omgadf = a.omgadf + d.ssg*a.t
	a.xnode = a.xnode + d.ssh*a.t
	a.em = e.Eo + d.sse*a.t
	a.xinc = e.Xincl + d.ssi*a.t
	if a.xinc < 0 {
		a.xinc = -a.xinc
		a.xnode = a.xnode + math.Pi
		a.omgadf = a.omgadf - math.Pi
	}
	if !d.hasResonance {
		return
	}

	var (
		delt, ft            float64
		xndot, xnddt, xldot float64
		doLoop, epochRestart bool
	)
	for {
		if d.atime == 0 ||
			(a.t >= 0 && d.atime < 0) ||
			(a.t < 0 && d.atime >= 0) {
			// Epoch restart
			if a.t >= 0 {
				delt = stepp
			} else {
				delt = stepn
			}
			d.atime = 0
			d.xni = d.xnq
			d.xli = d.xlamo
		} else if math.Abs(a.t) >= math.Abs(d.atime) {
			if a.t > 0 {
				delt = stepp
			} else {
				delt = stepn
			}
		}

		for {
			if math.Abs(a.t-d.atime) >= stepp {
				doLoop = true
				epochRestart = false
			} else {
				ft = a.t - d.atime
				doLoop = false
			}

			// Step back towards epoch when the target lies behind the integrator.
			if math.Abs(a.t) < math.Abs(d.atime) {
				if a.t >= 0 {
					delt = stepn
				} else {
					delt = stepp
				}
				doLoop = true
				epochRestart = true
			}

			xndot, xnddt = d.resonanceRates()
			xldot = d.xni + d.xfact
			xnddt = xnddt * xldot

			if doLoop {
				d.xli = d.xli + xldot*delt + xndot*step2
				d.xni = d.xni + xndot*delt + xnddt*step2
				d.atime = d.atime + delt
			}
			if !doLoop || epochRestart {
				break
			}
		}
		if !doLoop || !epochRestart {
			break
		}
	}

	a.xn = d.xni + xndot*ft + xnddt*ft*ft*0.5
	xl := d.xli + xldot*ft + xndot*ft*ft*0.5
	temp := -a.xnode + d.thgr + a.t*thdt
	if !d.isSynchronousResonance {
		a.xll = xl + temp + temp
	} else {
		a.xll = xl - a.omgadf + temp
	}
}

// resonanceRates returns the first and second derivatives of the mean
// motion at the integrator's current state.
func (d *deepEngine) resonanceRates() (xndot, xnddt float64) {
	if d.isSynchronousResonance {
		xndot = d.del1*math.Sin(d.xli-fasx2) +
			d.del2*math.Sin(2*(d.xli-fasx4)) +
			d.del3*math.Sin(3*(d.xli-fasx6))
		xnddt = d.del1*math.Cos(d.xli-fasx2) +
			2*d.del2*math.Cos(2*(d.xli-fasx4)) +
			3*d.del3*math.Cos(3*(d.xli-fasx6))
		return xndot, xnddt
	}

	xomi := d.omegaq + d.omgdot*d.atime
	x2omi := xomi + xomi
	x2li := d.xli + d.xli
	xndot = d.d2201*math.Sin(x2omi+d.xli-g22) +
		d.d2211*math.Sin(d.xli-g22) +
		d.d3210*math.Sin(xomi+d.xli-g32) +
		d.d3222*math.Sin(-xomi+d.xli-g32) +
		d.d4410*math.Sin(x2omi+x2li-g44) +
		d.d4422*math.Sin(x2li-g44) +
		d.d5220*math.Sin(xomi+d.xli-g52) +
		d.d5232*math.Sin(-xomi+d.xli-g52) +
		d.d5421*math.Sin(xomi+x2li-g54) +
		d.d5433*math.Sin(-xomi+x2li-g54)
	xnddt = d.d2201*math.Cos(x2omi+d.xli-g22) +
		d.d2211*math.Cos(d.xli-g22) +
		d.d3210*math.Cos(xomi+d.xli-g32) +
		d.d3222*math.Cos(-xomi+d.xli-g32) +
		d.d5220*math.Cos(xomi+d.xli-g52) +
		d.d5232*math.Cos(-xomi+d.xli-g52) +
		2*(d.d4410*math.Cos(x2omi+x2li-g44)+
			d.d4422*math.Cos(x2li-g44)+
			d.d5421*math.Cos(xomi+x2li-g54)+
			d.d5433*math.Cos(-xomi+x2li-g54))
	return xndot, xnddt
}

// dpper adds the lunar-solar periodics. Below 0.2 rad of inclination they
// are applied through the Lyddane modification to avoid the singularity
// of the node at zero inclination.
func (d *deepEngine) dpper(a *deepArgs) {
	d.expect(phaseSecular)
	d.phase = phasePeriodic

	sinis, cosis := math.Sin(a.xinc), math.Cos(a.xinc)
	if math.Abs(d.savtsn-a.t) >= 30 {
		d.savtsn = a.t
		ses, sis, sls, sghs, shs := d.solar.at(d.zmos+zns*a.t, zes)
		sel, sil, sll, sghl, shl := d.lunar.at(d.zmol+znl*a.t, zel)
		d.pe = ses + sel
		d.pinc = sis + sil
		d.pl = sls + sll
		d.pgh = sghs + sghl
		d.ph = shs + shl
	}

	pgh, ph := d.pgh, d.ph
	a.xinc = a.xinc + d.pinc
	a.em = a.em + d.pe

	if d.xqncl >= 0.2 {
		ph = ph / a.sinio
		pgh = pgh - a.cosio*ph
		a.omgadf = a.omgadf + pgh
		a.xnode = a.xnode + ph
		a.xll = a.xll + d.pl
		return
	}

	sinok, cosok := math.Sin(a.xnode), math.Cos(a.xnode)
	alfdp := sinis * sinok
	betdp := sinis * cosok
	dalf := ph*cosok + d.pinc*cosis*sinok
	dbet := -ph*sinok + d.pinc*cosis*cosok
	alfdp = alfdp + dalf
	betdp = betdp + dbet
	a.xnode = NormalizeAngle2Pi(a.xnode)
	xls := a.xll + a.omgadf + cosis*a.xnode
	dls := d.pl + pgh - d.pinc*a.xnode*sinis
	xls = xls + dls
	xnoh := a.xnode
	a.xnode = ArcTan2(alfdp, betdp)

	// Keep the node on the same side of the 2π wrap as before the
	// correction (Rob Matson).
	if math.Abs(xnoh-a.xnode) > math.Pi {
		if a.xnode < xnoh {
			a.xnode += twoPi
		} else {
			a.xnode -= twoPi
		}
	}

	a.xll = a.xll + d.pl
	a.omgadf = xls - a.xll - math.Cos(a.xinc)*a.xnode
}
