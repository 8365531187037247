package sgp4sdp4

import "math"

// Mathematical constants
const (
	twoPi   = 2 * math.Pi
	pio2    = math.Pi / 2
	x3pio2  = 3 * math.Pi / 2
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
	tothrd  = 2.0 / 3.0
)

// WGS-72 geopotential and atmosphere constants, in earth radii and minutes.
const (
	ae     = 1.0           // Distance units/earth radii
	xkmper = 6378.135      // Earth's equatorial radius in km
	xj3    = -2.53881e-6   // J3 harmonic
	ck2    = 5.413079e-4   // J2/2
	ck4    = 6.209887e-7   // -3/8 J4
	xke    = 7.43669161e-2 // sqrt(GM) in er^1.5/min
	qoms2t = 1.880279e-09  // (q0 - s)^4 in er^4
	sDrag  = 1.012229      // Atmosphere reference altitude parameter s, in er
	e6a    = 1.0e-6        // Kepler solver tolerance
	a3ovk2 = -xj3 / ck2 * ae * ae * ae
)

// Time and earth rotation
const (
	minutesPerDay = 1440.0
	secondsPerDay = 86400.0
	omegaE        = 1.00273790934       // Earth rotations per sidereal day
	flattening    = 3.35281066474748e-3 // WGS-72 ellipsoid
)

// Lunar and solar perturbation constants
const (
	zns    = 1.19459e-5
	c1ss   = 2.9864797e-6
	zes    = 1.675e-2
	znl    = 1.5835218e-4
	c1l    = 4.7968065e-7
	zel    = 5.490e-2
	zcosis = 9.1744867e-1
	zsinis = 3.9785416e-1
	zsings = -9.8088458e-1
	zcosgs = 1.945905e-1
)

// Geopotential resonance constants
const (
	q22    = 1.7891679e-6
	q31    = 2.1460748e-6
	q33    = 2.2123015e-7
	g22    = 5.7686396
	g32    = 9.5240898e-1
	g44    = 1.8014998
	g52    = 1.0508330
	g54    = 4.4108898
	root22 = 1.7891679e-6
	root32 = 3.7393792e-7
	root44 = 7.3636953e-9
	root52 = 1.1428639e-7
	root54 = 2.1765803e-9
	thdt   = 4.3752691e-3 // Earth rotation rate, rad/min
)

// Cubic coefficient of the semi-major axis recovery. SGP4/SDP4
// initialization evaluates 134/81 in integer arithmetic, giving 1;
// ephemeris selection uses the real quotient.
const (
	initCubic   = 1.0
	selectCubic = 134.0 / 81.0
)

// deepSpacePeriod is the orbital period, in minutes, from which the
// deep-space model is selected.
const deepSpacePeriod = 225.0
