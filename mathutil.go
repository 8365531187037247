package sgp4sdp4

import (
	"math"
	"time"

	"github.com/joshuaferrara/go-satellite"
	"github.com/soniakeys/meeus/v3/julian"
)

// NormalizeAngle2Pi reduces x to the interval [0, 2π).
func NormalizeAngle2Pi(x float64) float64 {
	return Modulus(x, twoPi)
}

// Modulus returns a mod b in the interval [0, b) for b > 0.
func Modulus(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += b
	}
	// r + b can round up to b for tiny negative remainders
	if r >= b {
		r = 0
	}
	return r
}

// ArcTan2 is a four-quadrant arctangent returning an angle in [0, 2π).
// Unlike math.Atan2 it takes the sine first and never returns a negative angle.
func ArcTan2(sin, cos float64) float64 {
	if cos == 0 {
		if sin > 0 {
			return pio2
		}
		return x3pio2
	}
	if cos > 0 {
		if sin >= 0 {
			return math.Atan(sin / cos)
		}
		return twoPi + math.Atan(sin/cos)
	}
	return math.Pi + math.Atan(sin/cos)
}

// Frac returns the fractional part of x, carrying the sign of x.
func Frac(x float64) float64 {
	_, f := math.Modf(x)
	return f
}

// JulianDateOfYear returns the Julian date of day 0.0 of January of year
// (Astronomical Formulae for Calculators, Meeus, pages 23-25).
// Only valid for Gregorian dates.
func JulianDateOfYear(year float64) float64 {
	year--
	a := math.Trunc(year / 100)
	b := 2 - a + math.Trunc(a/4)
	i := math.Trunc(365.25*year) + 428 // int(30.6001 * 14)
	return i + 1720994.5 + b
}

// splitEpoch splits a YYDDD.DDDDDDDD epoch into its four-digit year and
// fractional day of year. Two-digit years below 57 belong to the 21st century.
func splitEpoch(epoch float64) (year int, day float64) {
	yy, f := math.Modf(epoch * 1e-3)
	day = f * 1e3
	year = int(yy)
	if year < 57 {
		year += 2000
	} else {
		year += 1900
	}
	return year, day
}

// JulianDateOfEpoch converts a YYDDD.DDDDDDDD element set epoch to a Julian date.
func JulianDateOfEpoch(epoch float64) float64 {
	year, day := splitEpoch(epoch)
	return JulianDateOfYear(float64(year)) + day
}

// EpochTime converts a YYDDD.DDDDDDDD element set epoch to UTC.
func EpochTime(epoch float64) time.Time {
	year, day := splitEpoch(epoch)
	whole, frac := math.Modf(day)
	base := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(whole)-1)
	return base.Add(time.Duration(math.Round(frac * secondsPerDay * 1e9)))
}

// IsLeapYear applies the Gregorian leap year rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// DayOfYear returns the ordinal day (1 to 366) of a Gregorian date.
func DayOfYear(year, month, day int) int {
	doy := daysBeforeMonth[month-1] + day
	if month > 2 && IsLeapYear(year) {
		doy++
	}
	return doy
}

// FractionOfDay converts a time of day to a fraction of a day.
func FractionOfDay(hour, minute int, second float64) float64 {
	return (float64(hour) + (float64(minute)+second/60.0)/60.0) / 24.0
}

// JulianDate returns the Julian date of t.
func JulianDate(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// CalendarDate returns the UTC calendar time of a Julian date.
func CalendarDate(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}

// ThetaG returns the Greenwich mean sidereal time, in radians, at an
// element set epoch (YYDDD.DDDDDDDD), together with ds50, the number of
// days elapsed since 1950 January 0.5.
func ThetaG(epoch float64) (theta, ds50 float64) {
	year, day := splitEpoch(epoch)
	whole, ut := math.Modf(day)
	jd := JulianDateOfYear(float64(year)) + whole
	ds50 = jd - 2433281.5 + ut
	theta = NormalizeAngle2Pi(6.3003880987*ds50 + 1.72944494)
	return theta, ds50
}

// ThetaGJD returns the Greenwich mean sidereal time, in radians, at a
// Julian date (The 1992 Astronomical Almanac, page B6).
func ThetaGJD(jd float64) float64 {
	// ThetaG_JD goes negative before J2000.
	return NormalizeAngle2Pi(satellite.ThetaG_JD(jd))
}
