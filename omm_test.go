package sgp4sdp4

import (
	"math"
	"testing"
	"time"
)

// Three CelesTrak GP records: two stations and a debris piece with a large B*.
const ommCatalog = `[
{"OBJECT_NAME":"ISS (ZARYA)","OBJECT_ID":"1998-067A","EPOCH":"2025-05-26T13:06:57.824640","MEAN_MOTION":15.4975272,"ECCENTRICITY":0.0002241,"INCLINATION":51.6382,"RA_OF_ASC_NODE":54.2937,"ARG_OF_PERICENTER":147.4648,"MEAN_ANOMALY":271.6158,"EPHEMERIS_TYPE":0,"CLASSIFICATION_TYPE":"U","NORAD_CAT_ID":25544,"ELEMENT_SET_NO":999,"REV_AT_EPOCH":51180,"BSTAR":0.00019155,"MEAN_MOTION_DOT":0.00010397,"MEAN_MOTION_DDOT":0},
{"OBJECT_NAME":"CSS (TIANHE)","OBJECT_ID":"2021-035A","EPOCH":"2025-05-25T23:00:12.248640","MEAN_MOTION":15.62412324,"ECCENTRICITY":0.0005017,"INCLINATION":41.463,"RA_OF_ASC_NODE":155.4996,"ARG_OF_PERICENTER":337.345,"MEAN_ANOMALY":22.7167,"EPHEMERIS_TYPE":0,"CLASSIFICATION_TYPE":"U","NORAD_CAT_ID":48274,"ELEMENT_SET_NO":999,"REV_AT_EPOCH":23268,"BSTAR":0.00015624,"MEAN_MOTION_DOT":0.00013949,"MEAN_MOTION_DDOT":0},
{"OBJECT_NAME":"FREGAT DEB","OBJECT_ID":"2011-037PF","EPOCH":"2025-05-19T00:59:35.639808","MEAN_MOTION":12.28834273,"ECCENTRICITY":0.0869949,"INCLINATION":51.6315,"RA_OF_ASC_NODE":92.6347,"ARG_OF_PERICENTER":128.5677,"MEAN_ANOMALY":239.6424,"EPHEMERIS_TYPE":0,"CLASSIFICATION_TYPE":"U","NORAD_CAT_ID":49271,"ELEMENT_SET_NO":999,"REV_AT_EPOCH":17632,"BSTAR":0.03654,"MEAN_MOTION_DOT":0.00014961,"MEAN_MOTION_DDOT":0}
]`

// epochDayTolerance is a few ulps of a day-of-year number.
const epochDayTolerance = 1e-13

func testOMMs(t *testing.T) []OMM {
	t.Helper()
	omms, err := ParseOMMs([]byte(ommCatalog))
	if err != nil {
		t.Fatalf("ParseOMMs() error = %v", err)
	}
	if len(omms) != 3 {
		t.Fatalf("ParseOMMs() returned %d records, want 3", len(omms))
	}
	return omms
}

func TestOMMToTLE(t *testing.T) {
	omms := testOMMs(t)

	tests := []struct {
		name      string
		catNr     int
		intl      string
		epochDay  float64 // Day of 2025
		epochTime time.Time
		bstar     float64
		revNum    int
	}{
		{"ISS (ZARYA)", 25544, "98067A", 146.546502599999987,
			time.Date(2025, 5, 26, 13, 6, 57, 824640000, time.UTC), 0.00019155, 51180},
		{"CSS (TIANHE)", 48274, "21035A", 145.95847509999998692,
			time.Date(2025, 5, 25, 23, 0, 12, 248640000, time.UTC), 0.00015624, 23268},
		{"FREGAT DEB", 49271, "11037PF", 139 + float64(3575639808000)/(secondsPerDay*1e9),
			time.Date(2025, 5, 19, 0, 59, 35, 639808000, time.UTC), 0.03654, 17632},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tle, err := omms[i].ToTLE()
			if err != nil {
				t.Fatalf("ToTLE() error = %v", err)
			}
			if tle.Name != tt.name || tle.SatelliteNumber != tt.catNr || tle.International != tt.intl {
				t.Errorf("identifiers = %q %d %q, want %q %d %q",
					tle.Name, tle.SatelliteNumber, tle.International, tt.name, tt.catNr, tt.intl)
			}
			if tle.Classification != 'U' || tle.ElementNumber != 999 || tle.RevolutionNumber != tt.revNum {
				t.Errorf("classification %c, element set %d, revolution %d", tle.Classification, tle.ElementNumber, tle.RevolutionNumber)
			}
			if tle.EpochYear != 2025 || math.Abs(tle.EpochDay-tt.epochDay) > epochDayTolerance {
				t.Errorf("epoch = %d day %.17f, want 2025 day %.17f", tle.EpochYear, tle.EpochDay, tt.epochDay)
			}
			if d := tle.EpochTime().Sub(tt.epochTime); d < -10*time.Nanosecond || d > 10*time.Nanosecond {
				t.Errorf("EpochTime() = %v, want %v", tle.EpochTime(), tt.epochTime)
			}
			if tle.Bstar != tt.bstar {
				t.Errorf("Bstar = %g, want %g", tle.Bstar, tt.bstar)
			}
		})
	}

	// Angles and mean motion pass through in TLE units.
	tle, _ := omms[0].ToTLE()
	got := [...]float64{tle.Inclination, tle.RightAscension, tle.Eccentricity, tle.ArgOfPerigee, tle.MeanAnomaly, tle.MeanMotion, tle.MeanMotionDot}
	want := [...]float64{51.6382, 54.2937, 0.0002241, 147.4648, 271.6158, 15.4975272, 0.00010397}
	if got != want {
		t.Errorf("ISS elements = %v, want %v", got, want)
	}
}

func TestOMMEpoch(t *testing.T) {
	tests := []struct {
		in       string
		want     time.Time
		wantDay  float64
		wantFail bool
	}{
		{in: "2024-03-16T12:22:20.979840Z", want: time.Date(2024, 3, 16, 12, 22, 20, 979840000, time.UTC), wantDay: 76.51552060000000168},
		{in: "2024-03-16T14:22:20.979840+02:00", want: time.Date(2024, 3, 16, 12, 22, 20, 979840000, time.UTC), wantDay: 76.51552060000000168},
		{in: "2025-01-01T00:00:00Z", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), wantDay: 1},
		{in: "2025-05-26T13:06:57.824640", want: time.Date(2025, 5, 26, 13, 6, 57, 824640000, time.UTC), wantDay: 146.54650259999998692},
		{in: "2023-12-31T23:59:59.123", want: time.Date(2023, 12, 31, 23, 59, 59, 123000000, time.UTC), wantDay: 365.99998984953703110},
		{in: "2024-12-31T12:00:00", want: time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), wantDay: 366.5},
		{in: "NOT_A_DATE", wantFail: true},
		{in: "", wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOMMEpoch(tt.in)
			if tt.wantFail {
				if err == nil {
					t.Errorf("parseOMMEpoch(%q) = %v, want an error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOMMEpoch(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) || got.Location() != time.UTC {
				t.Errorf("parseOMMEpoch(%q) = %v, want %v", tt.in, got, tt.want)
			}
			year, day := epochDay(got)
			if year != tt.want.Year() || math.Abs(day-tt.wantDay) > epochDayTolerance {
				t.Errorf("epochDay() = %d, %.17f, want %d, %.17f", year, day, tt.want.Year(), tt.wantDay)
			}
		})
	}
}

// The CelesTrak TLE of the first record must propagate identically.
func TestOMMMatchesTLE(t *testing.T) {
	const issLines = `ISS (ZARYA)
1 25544U 98067A   25146.54650260  .00010397  00000+0  19155-3 0  9999
2 25544  51.6382  54.2937 0002241 147.4648 271.6158 15.49752720511807`

	fromText, err := ParseTLE(issLines)
	if err != nil {
		t.Fatalf("ParseTLE() error = %v", err)
	}
	fromOMM, err := testOMMs(t)[0].ToTLE()
	if err != nil {
		t.Fatalf("ToTLE() error = %v", err)
	}

	if d := fromText.EpochTime().Sub(fromOMM.EpochTime()); d < -10*time.Nanosecond || d > 10*time.Nanosecond {
		t.Errorf("epochs differ by %v", d)
	}
	if math.Abs(fromText.EpochDay-fromOMM.EpochDay) > epochDayTolerance {
		t.Errorf("EpochDay = %.17f from text, %.17f from OMM", fromText.EpochDay, fromOMM.EpochDay)
	}

	// Drag terms vanish at epoch, so the states agree to rounding.
	posText, velText := NewSatellite(fromText.Elements()).Propagate(0).Km()
	posOMM, velOMM := NewSatellite(fromOMM.Elements()).Propagate(0).Km()
	if d := posText.Sub(posOMM).Magnitude(); d > 1e-12 {
		t.Errorf("positions differ by %g km: %+v and %+v", d, posText, posOMM)
	}
	if d := velText.Sub(velOMM).Magnitude(); d > 1e-14 {
		t.Errorf("velocities differ by %g km/s: %+v and %+v", d, velText, velOMM)
	}
}

func TestOMMElements(t *testing.T) {
	for _, o := range testOMMs(t) {
		t.Run(o.ObjectName, func(t *testing.T) {
			e, err := o.Elements()
			if err != nil {
				t.Fatalf("Elements() error = %v", err)
			}
			if e.CatNr != o.NoradCatID || e.Name != o.ObjectName {
				t.Errorf("Elements() identifiers = %d %q", e.CatNr, e.Name)
			}
			if got := NewSatellite(e).Regime(); got != NearEarth {
				t.Errorf("Regime() = %v, want %v", got, NearEarth)
			}
			if math.Abs(e.Xno-o.MeanMotion*twoPi/minutesPerDay) > 1e-15 {
				t.Errorf("Xno = %g", e.Xno)
			}
			if math.Abs(e.Xincl-o.Inclination*deg2rad) > 1e-15 {
				t.Errorf("Xincl = %g", e.Xincl)
			}
		})
	}
}

func TestOMMInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *OMM)
	}{
		{"Eccentricity above one", func(o *OMM) { o.Eccentricity = 1.2 }},
		{"Negative inclination", func(o *OMM) { o.Inclination = -1 }},
		{"Bad object ID", func(o *OMM) { o.ObjectID = "ZARYA" }},
		{"Bad epoch", func(o *OMM) { o.EpochStr = "yesterday" }},
	}

	omms := testOMMs(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := omms[0]
			tt.mutate(&o)
			if _, err := o.ToTLE(); err == nil {
				t.Error("ToTLE() succeeded, want an error")
			}
			if _, err := o.Elements(); err == nil {
				t.Error("Elements() succeeded, want an error")
			}
		})
	}

	if _, err := ParseOMMs([]byte(`{"OBJECT_NAME":`)); err == nil {
		t.Error("ParseOMMs() accepted truncated JSON")
	}
}
