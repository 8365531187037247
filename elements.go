package sgp4sdp4

import (
	"fmt"
	"math"
)

// Elements is a mean element set in the units the propagators consume:
// angles in radians, mean motion in radians per minute and B* in inverse
// earth radii. Use (*TLE).Elements or (*OMM).Elements to build one from
// text sources.
type Elements struct {
	Epoch  float64 // YYDDD.DDDDDDDD
	XnDt2o float64 // First time derivative of mean motion / 2 (rad/min²)
	XnDd6o float64 // Second time derivative of mean motion / 6 (rad/min³)
	Bstar  float64 // Drag term (1/earth radii)
	Xincl  float64 // Inclination (rad)
	Xnodeo float64 // Right ascension of ascending node (rad)
	Eo     float64 // Eccentricity
	Omegao float64 // Argument of perigee (rad)
	Xmo    float64 // Mean anomaly (rad)
	Xno    float64 // Mean motion (rad/min)

	CatNr  int // NORAD catalog number
	ElSet  int // Element set number
	RevNum int // Revolution number at epoch

	Name  string
	IDesg string // International designator
}

// recoverMeanMotion undoes the Kozai mean motion convention of the element
// set with two closed-form rounds of the J2 correction, returning the
// original mean motion (rad/min) and semi-major axis (earth radii). k is the
// coefficient of the cubic term of the semi-major axis series.
func (e Elements) recoverMeanMotion(k float64) (xnodp, aodp float64) {
	a1 := math.Pow(xke/e.Xno, tothrd)
	cosio := math.Cos(e.Xincl)
	x3thm1 := 3*cosio*cosio - 1
	betao2 := 1 - e.Eo*e.Eo
	betao := math.Sqrt(betao2)
	del1 := 1.5 * ck2 * x3thm1 / (a1 * a1 * betao * betao2)
	ao := a1 * (1 - del1*(0.5*tothrd+del1*(1+k*del1)))
	delo := 1.5 * ck2 * x3thm1 / (ao * ao * betao * betao2)
	return e.Xno / (1 + delo), ao / (1 - delo)
}

// Period returns the anomalistic period in minutes.
func (e Elements) Period() float64 {
	xnodp, _ := e.recoverMeanMotion(selectCubic)
	return twoPi / xnodp
}

// IsDeepSpace reports whether the element set needs the deep-space model,
// that is whether its period is at least 225 minutes.
func (e Elements) IsDeepSpace() bool {
	return e.Period() >= deepSpacePeriod
}

// Regime identifies which propagation model handles an element set.
type Regime int

const (
	NearEarth Regime = iota // SGP4, period below 225 minutes
	DeepSpace               // SDP4, period of 225 minutes or more
)

func (r Regime) String() string {
	switch r {
	case NearEarth:
		return "near-earth"
	case DeepSpace:
		return "deep-space"
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// Vector is a cartesian 3-vector.
type Vector struct {
	X, Y, Z float64
}

// Magnitude returns the euclidean norm of v.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns v multiplied by k.
func (v Vector) Scale(k float64) Vector {
	return Vector{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Orientation holds the orbit plane angles after the time-dependent
// corrections applied during a propagation.
type Orientation struct {
	ArgPerigee  float64 // Argument of perigee (rad)
	Inclination float64 // Inclination (rad)
	RAAN        float64 // Right ascension of ascending node (rad)
}

// State is the result of one propagation, in the true equator mean
// equinox frame of the element set.
type State struct {
	Tsince      float64 // Minutes since epoch
	Position    Vector  // Earth radii
	Velocity    Vector  // Earth radii per minute
	Phase       float64 // Orbital phase in [0, 2π)
	Orientation Orientation
}

// Km returns position in km and velocity in km/s.
func (s State) Km() (pos, vel Vector) {
	return ConvertSatState(s.Position, s.Velocity)
}

// Decayed reports whether the position lies inside the earth.
func (s State) Decayed() bool {
	return s.Position.Magnitude() < ae
}

// ConvertSatState converts a position in earth radii and a velocity in
// earth radii per minute to km and km/s.
func ConvertSatState(pos, vel Vector) (Vector, Vector) {
	return pos.Scale(xkmper), vel.Scale(xkmper * minutesPerDay / secondsPerDay)
}
