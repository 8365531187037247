package sgp4sdp4

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TLE is a two-line element set in the units of its text form: angles in
// degrees and mean motion in revolutions per day.
type TLE struct {
	// Line 0 (optional name)
	Name string

	// Line 1 fields
	SatelliteNumber int
	Classification  rune
	International   string // International designator
	EpochYear       int    // Four-digit year
	EpochDay        float64
	MeanMotionDot   float64 // ndot/2, rev/day²
	MeanMotionDot2  float64 // nddot/6, rev/day³
	Bstar           float64 // 1/earth radii
	ElementNumber   int
	CheckSum1       int

	// Line 2 fields
	Inclination      float64
	RightAscension   float64
	Eccentricity     float64
	ArgOfPerigee     float64
	MeanAnomaly      float64
	MeanMotion       float64
	RevolutionNumber int
	CheckSum2        int
}

// Epoch returns the epoch in the YYDDD.DDDDDDDD form the propagators use.
func (tle *TLE) Epoch() float64 {
	return float64(tle.EpochYear%100)*1000 + tle.EpochDay
}

// EpochTime returns the UTC time of the element set epoch.
func (tle *TLE) EpochTime() time.Time {
	days, frac := math.Modf(tle.EpochDay)
	base := time.Date(tle.EpochYear, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(days)-1)
	return base.Add(time.Duration(math.Round(frac * secondsPerDay * 1e9)))
}

// Elements converts the element set to radians, radians per minute and
// earth radii, ready for propagation.
func (tle *TLE) Elements() Elements {
	return Elements{
		Epoch:  tle.Epoch(),
		XnDt2o: tle.MeanMotionDot * twoPi / (minutesPerDay * minutesPerDay),
		XnDd6o: tle.MeanMotionDot2 * twoPi / (minutesPerDay * minutesPerDay * minutesPerDay),
		Bstar:  tle.Bstar / ae,
		Xincl:  tle.Inclination * deg2rad,
		Xnodeo: tle.RightAscension * deg2rad,
		Eo:     tle.Eccentricity,
		Omegao: tle.ArgOfPerigee * deg2rad,
		Xmo:    tle.MeanAnomaly * deg2rad,
		Xno:    tle.MeanMotion * twoPi / minutesPerDay,
		CatNr:  tle.SatelliteNumber,
		ElSet:  tle.ElementNumber,
		RevNum: tle.RevolutionNumber,
		Name:   tle.Name,
		IDesg:  tle.International,
	}
}

// ParseTLE parses a two-line element set, optionally preceded by a name
// line. Both checksums are verified.
func ParseTLE(input string) (*TLE, error) {
	lines := strings.Split(strings.TrimSpace(input), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	if len(lines) < 2 || len(lines) > 3 {
		return nil, &TLEError{Field: "line count", Err: fmt.Errorf("must contain 2 or 3 lines, got %d", len(lines))}
	}

	if len(lines) == 2 {
		return ParseTLELines("", lines[0], lines[1])
	}
	return ParseTLELines(lines[0], lines[1], lines[2])
}

// ParseTLELines parses the two data lines of an element set with a name.
// The "0 " prefix of a three-line catalog name is dropped.
func ParseTLELines(name, line1, line2 string) (*TLE, error) {
	tle := &TLE{Name: strings.TrimPrefix(strings.TrimSpace(name), "0 ")}
	if err := tle.parseLines(strings.TrimSpace(line1), strings.TrimSpace(line2)); err != nil {
		return nil, err
	}
	return tle, nil
}

func (tle *TLE) parseLines(line1, line2 string) error {
	for i, line := range []string{line1, line2} {
		if len(line) != 69 {
			return &TLEError{Line: i + 1, Field: "length", Err: fmt.Errorf("must be 69 characters, got %d", len(line))}
		}
	}
	if err := tle.parseLine1(line1); err != nil {
		return err
	}
	if err := tle.parseLine2(line2); err != nil {
		return err
	}
	if sum := calculateChecksum(line1); sum != tle.CheckSum1 {
		return &ChecksumError{Line: 1, Want: tle.CheckSum1, Got: sum}
	}
	if sum := calculateChecksum(line2); sum != tle.CheckSum2 {
		return &ChecksumError{Line: 2, Want: tle.CheckSum2, Got: sum}
	}
	return nil
}

// fieldReader extracts columns of one TLE line and remembers the first
// failure, so that a line parses as a flat sequence of reads.
type fieldReader struct {
	line string
	num  int
	err  error
}

func (r *fieldReader) fail(field string, err error) {
	if r.err == nil {
		r.err = &TLEError{Line: r.num, Field: field, Err: err}
	}
}

func (r *fieldReader) integer(field string, from, to int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.line[from:to]))
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *fieldReader) float(field string, from, to int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.line[from:to]), 64)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// decimal reads a field with an implied leading decimal point, such as the
// eccentricity "0001234".
func (r *fieldReader) decimal(field string, from, to int) float64 {
	v, err := strconv.ParseFloat("0."+strings.TrimSpace(r.line[from:to]), 64)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// exponential reads a field of the form " SXXXXX±E", a signed mantissa with
// an implied leading decimal point followed by a power of ten.
func (r *fieldReader) exponential(field string, from, to int) float64 {
	s := r.line[from:to]
	mantissa, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-2]), 64)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	exp, err := strconv.Atoi(strings.TrimSpace(s[len(s)-2:]))
	if err != nil {
		r.fail(field, err)
		return 0
	}
	return mantissa * 1e-5 * math.Pow(10, float64(exp))
}

// signedDecimal reads the first derivative of mean motion, written
// " .00033214" or "-.00001234" with no leading zero.
func (r *fieldReader) signedDecimal(field string, from, to int) float64 {
	s := strings.TrimSpace(r.line[from:to])
	switch {
	case strings.HasPrefix(s, "."):
		s = "0" + s
	case strings.HasPrefix(s, "-."):
		s = "-0" + s[1:]
	case strings.HasPrefix(s, "+."):
		s = "0" + s[1:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (tle *TLE) parseLine1(line string) error {
	if line[0] != '1' {
		return &TLEError{Line: 1, Field: "line number", Err: fmt.Errorf("must begin with '1', got %q", line[0])}
	}
	r := &fieldReader{line: line, num: 1}
	tle.SatelliteNumber = r.integer("satellite number", 2, 7)
	tle.Classification = rune(line[7])
	tle.International = strings.TrimSpace(line[9:17])

	yy := r.integer("epoch year", 18, 20)
	if yy < 57 {
		tle.EpochYear = 2000 + yy
	} else {
		tle.EpochYear = 1900 + yy
	}
	tle.EpochDay = r.float("epoch day", 20, 32)
	tle.MeanMotionDot = r.signedDecimal("mean motion dot", 33, 43)
	tle.MeanMotionDot2 = r.exponential("mean motion dot 2", 44, 52)
	tle.Bstar = r.exponential("B*", 53, 61)
	tle.ElementNumber = r.integer("element number", 64, 68)
	tle.CheckSum1 = r.integer("checksum", 68, 69)
	return r.err
}

func (tle *TLE) parseLine2(line string) error {
	if line[0] != '2' {
		return &TLEError{Line: 2, Field: "line number", Err: fmt.Errorf("must begin with '2', got %q", line[0])}
	}
	r := &fieldReader{line: line, num: 2}
	if n := r.integer("satellite number", 2, 7); r.err == nil && n != tle.SatelliteNumber {
		return &TLEError{Line: 2, Field: "satellite number", Err: fmt.Errorf("does not match line 1 (%d vs %d)", tle.SatelliteNumber, n)}
	}
	tle.Inclination = r.float("inclination", 8, 16)
	tle.RightAscension = r.float("right ascension", 17, 25)
	tle.Eccentricity = r.decimal("eccentricity", 26, 33)
	tle.ArgOfPerigee = r.float("argument of perigee", 34, 42)
	tle.MeanAnomaly = r.float("mean anomaly", 43, 51)
	tle.MeanMotion = r.float("mean motion", 52, 63)
	tle.RevolutionNumber = r.integer("revolution number", 63, 68)
	tle.CheckSum2 = r.integer("checksum", 68, 69)
	return r.err
}

// calculateChecksum returns the modulo-10 checksum of the first 68
// characters of a TLE line: the sum of its digits, with '-' counting as 1.
func calculateChecksum(line string) int {
	sum := 0
	for i := 0; i < 68; i++ {
		switch c := line[i]; {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}
