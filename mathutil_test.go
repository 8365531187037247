package sgp4sdp4

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

func TestNormalizeAngle2Pi(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{-0.5, twoPi - 0.5},
		{7, 7 - twoPi},
		{twoPi, 0},
		{-twoPi, 0},
		{-1e-20, 0},
		{-3*twoPi - 1, twoPi - 1},
	}
	for _, tt := range tests {
		got := NormalizeAngle2Pi(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("NormalizeAngle2Pi(%g) = %.15f, want %.15f", tt.in, got, tt.want)
		}
		if got < 0 || got >= twoPi {
			t.Errorf("NormalizeAngle2Pi(%g) = %g, out of [0, 2π)", tt.in, got)
		}
	}
}

func TestModulus(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{7, 3, 1},
		{-1, 3, 2},
		{-7.5, 2, 0.5},
		{86400.5, 86400, 0.5},
	}
	for _, tt := range tests {
		if got := Modulus(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Modulus(%g, %g) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestArcTan2(t *testing.T) {
	tests := []struct {
		sin, cos, want float64
	}{
		{0, 1, 0},
		{1, 1, math.Pi / 4},
		{1, 0, math.Pi / 2},
		{1, -1, 3 * math.Pi / 4},
		{0, -1, math.Pi},
		{-1, -1, 5 * math.Pi / 4},
		{-1, 0, 3 * math.Pi / 2},
		{-1, 1, 7 * math.Pi / 4},
	}
	for _, tt := range tests {
		if got := ArcTan2(tt.sin, tt.cos); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("ArcTan2(%g, %g) = %.15f, want %.15f", tt.sin, tt.cos, got, tt.want)
		}
	}
}

func TestFrac(t *testing.T) {
	if got := Frac(2.75); got != 0.75 {
		t.Errorf("Frac(2.75) = %g", got)
	}
	if got := Frac(-1.25); got != -0.25 {
		t.Errorf("Frac(-1.25) = %g", got)
	}
}

func TestJulianDateOfYear(t *testing.T) {
	tests := []struct {
		year float64
		want float64
	}{
		{1950, 2433281.5},
		{1980, 2444238.5},
		{2000, 2451543.5},
		{2024, 2460309.5},
	}
	for _, tt := range tests {
		if got := JulianDateOfYear(tt.year); got != tt.want {
			t.Errorf("JulianDateOfYear(%g) = %.1f, want %.1f", tt.year, got, tt.want)
		}
	}
}

func TestEpochConversions(t *testing.T) {
	tests := []struct {
		epoch float64
		want  time.Time
	}{
		{24100.5, time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)},
		{80001.0, time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)},
		{56366.25, time.Date(2056, 12, 31, 6, 0, 0, 0, time.UTC)},
		{57001.75, time.Date(1957, 1, 1, 18, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := EpochTime(tt.epoch); got.Sub(tt.want).Abs() > time.Microsecond {
			t.Errorf("EpochTime(%v) = %v, want %v", tt.epoch, got, tt.want)
		}
		jd := JulianDateOfEpoch(tt.epoch)
		if want := JulianDate(tt.want); math.Abs(jd-want) > 1e-8 {
			t.Errorf("JulianDateOfEpoch(%v) = %.8f, want %.8f", tt.epoch, jd, want)
		}
	}
}

func TestCalendarDateRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(1980, 10, 1, 23, 41, 24, 0, time.UTC),
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 6, 30, 15, 500e6, time.UTC),
	}
	for _, tm := range times {
		got := CalendarDate(JulianDate(tm))
		if d := got.Sub(tm); d > time.Millisecond || d < -time.Millisecond {
			t.Errorf("CalendarDate(JulianDate(%v)) = %v", tm, got)
		}
	}
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		year, month, day int
		want             int
	}{
		{2023, 1, 1, 1},
		{2023, 3, 1, 60},
		{2024, 3, 1, 61},
		{2024, 4, 9, 100},
		{2000, 12, 31, 366},
		{1900, 12, 31, 365},
	}
	for _, tt := range tests {
		if got := DayOfYear(tt.year, tt.month, tt.day); got != tt.want {
			t.Errorf("DayOfYear(%d, %d, %d) = %d, want %d", tt.year, tt.month, tt.day, got, tt.want)
		}
	}

	for year, want := range map[int]bool{1900: false, 2000: true, 2023: false, 2024: true} {
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestFractionOfDay(t *testing.T) {
	if got := FractionOfDay(12, 0, 0); got != 0.5 {
		t.Errorf("FractionOfDay(12, 0, 0) = %g", got)
	}
	if got := FractionOfDay(6, 30, 36); math.Abs(got-0.271250) > 1e-12 {
		t.Errorf("FractionOfDay(6, 30, 36) = %g", got)
	}
}

func TestThetaGJD(t *testing.T) {
	times := []time.Time{
		time.Date(1980, 10, 1, 23, 41, 24, 0, time.UTC),
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC),
		time.Date(2031, 7, 14, 3, 15, 0, 0, time.UTC),
	}
	for _, tm := range times {
		jd := JulianDate(tm)
		var gmst unit.Time = sidereal.Mean(jd)
		got := ThetaGJD(jd)
		if d := angleDiff(got, gmst.Rad()); math.Abs(d) > 1e-6 {
			t.Errorf("ThetaGJD(%v) = %.9f, want %.9f", tm, got, gmst.Rad())
		}
		if got < 0 || got >= twoPi {
			t.Errorf("ThetaGJD(%v) = %g, out of [0, 2π)", tm, got)
		}
	}
}

func TestThetaG(t *testing.T) {
	for _, epoch := range []float64{80275.98708465, 80230.29629788, 8264.51782528, 24100.5} {
		theta, ds50 := ThetaG(epoch)
		jd := JulianDateOfEpoch(epoch)
		if want := jd - 2433281.5; math.Abs(ds50-want) > 1e-8 {
			t.Errorf("ThetaG(%v) ds50 = %.8f, want %.8f", epoch, ds50, want)
		}
		// The linear rate drifts from the full expression by a few 1e-6 rad over decades.
		if d := angleDiff(theta, ThetaGJD(jd)); math.Abs(d) > 5e-5 {
			t.Errorf("ThetaG(%v) = %.9f, ThetaGJD = %.9f", epoch, theta, ThetaGJD(jd))
		}
	}
}

// Within one UT day sidereal time advances at omegaE rotations per day.
func TestThetaGJDRate(t *testing.T) {
	const midnight = 2460409.5
	for _, ut := range []float64{0.125, 0.25, 0.5, 0.75} {
		got := angleDiff(ThetaGJD(midnight+ut), ThetaGJD(midnight))
		want := NormalizeAngle2Pi(twoPi*omegaE*ut+math.Pi) - math.Pi
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("sidereal advance over %v day = %.12f, want %.12f", ut, got, want)
		}
	}
}
