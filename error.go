package sgp4sdp4

import (
	"fmt"
)

// DecayedError is returned by (*Satellite).FindPosition when the propagated
// position lies inside the earth.
type DecayedError struct {
	CatNr  int     // NORAD catalog number of the satellite
	Tsince float64 // Minutes since epoch at which decay was detected
	Radius float64 // Orbital radius in earth radii
}

func (e *DecayedError) Error() string {
	return fmt.Sprintf("satellite %d has decayed (at tsince %.2f min, radius %.4f < 1.0 earth radii)", e.CatNr, e.Tsince, e.Radius)
}

// TLEError reports a field of a two-line element set that could not be parsed.
type TLEError struct {
	Line  int    // 1 or 2, 0 for the set as a whole
	Field string // Name of the offending field
	Err   error
}

func (e *TLEError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("invalid TLE: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid TLE line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *TLEError) Unwrap() error {
	return e.Err
}

// ChecksumError is returned when the modulo-10 checksum of a TLE line does
// not match the one it carries.
type ChecksumError struct {
	Line int
	Want int // Checksum carried by the line
	Got  int // Checksum computed from the line
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch in line %d: expected %d (from TLE), got %d (calculated)", e.Line, e.Want, e.Got)
}
