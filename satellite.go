package sgp4sdp4

import (
	"time"
)

// Satellite propagates one element set. The regime is chosen once at
// construction; model coefficients are computed on first use and kept.
//
// A Satellite is not safe for concurrent use. Distinct satellites share no
// state and can be propagated from different goroutines.
type Satellite struct {
	elements  Elements
	regime    Regime
	nearEarth *nearEarth
	deepSpace *deepSpace
}

// NewSatellite returns a propagator for e. Orbits with a recovered period
// of 225 minutes or more use SDP4, the others SGP4.
func NewSatellite(e Elements) *Satellite {
	s := &Satellite{elements: e}
	if e.IsDeepSpace() {
		s.regime = DeepSpace
		s.deepSpace = &deepSpace{}
	} else {
		s.regime = NearEarth
		s.nearEarth = &nearEarth{}
	}
	return s
}

// NewSatelliteFromTLE parses a two or three line element set and returns its propagator.
func NewSatelliteFromTLE(input string) (*Satellite, error) {
	tle, err := ParseTLE(input)
	if err != nil {
		return nil, err
	}
	return NewSatellite(tle.Elements()), nil
}

// Elements returns the element set the satellite was built from.
func (s *Satellite) Elements() Elements {
	return s.elements
}

// Regime reports which model propagates the satellite.
func (s *Satellite) Regime() Regime {
	return s.regime
}

// Resonance reports the geopotential resonance of a deep-space orbit.
// Near-earth orbits have none.
func (s *Satellite) Resonance() Resonance {
	if s.regime == NearEarth {
		return NoResonance
	}
	return s.deepSpace.resonance(s.elements)
}

// Coefficients returns the drag and density coefficients computed at
// initialization.
func (s *Satellite) Coefficients() Coefficients {
	if s.regime == NearEarth {
		return s.nearEarth.coefficients(s.elements)
	}
	return s.deepSpace.coefficients(s.elements)
}

// Propagate returns the position and velocity tsince minutes after epoch.
// tsince may be negative. No error is reported: a decayed orbit yields a
// position inside the earth and degenerate elements yield NaN.
func (s *Satellite) Propagate(tsince float64) State {
	if s.regime == NearEarth {
		return s.nearEarth.propagate(s.elements, tsince)
	}
	return s.deepSpace.propagate(s.elements, tsince)
}

// PropagateTime propagates to an absolute time.
func (s *Satellite) PropagateTime(t time.Time) State {
	return s.Propagate(s.Tsince(t))
}

// Tsince returns the minutes elapsed between the element set epoch and t.
func (s *Satellite) Tsince(t time.Time) float64 {
	return t.Sub(EpochTime(s.elements.Epoch)).Minutes()
}

// FindPosition propagates like Propagate and returns a *DecayedError when
// the resulting position lies inside the earth.
func (s *Satellite) FindPosition(tsince float64) (State, error) {
	st := s.Propagate(tsince)
	if r := st.Position.Magnitude(); r < ae {
		return st, &DecayedError{CatNr: s.elements.CatNr, Tsince: tsince, Radius: r}
	}
	return st, nil
}

// Period returns the anomalistic period in minutes.
func (s *Satellite) Period() float64 {
	return s.elements.Period()
}

// PerigeeAltitude returns the perigee height above the equatorial radius, in km.
func (s *Satellite) PerigeeAltitude() float64 {
	_, aodp := s.elements.recoverMeanMotion(initCubic)
	return (aodp*(1-s.elements.Eo) - ae) * xkmper
}

// ApogeeAltitude returns the apogee height above the equatorial radius, in km.
func (s *Satellite) ApogeeAltitude() float64 {
	_, aodp := s.elements.recoverMeanMotion(initCubic)
	return (aodp*(1+s.elements.Eo) - ae) * xkmper
}
