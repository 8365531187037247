package sgp4sdp4

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OMM is one CCSDS Orbit Mean-elements Message in the JSON form published
// by space-track.org and CelesTrak. Units follow the TLE text form.
type OMM struct {
	ObjectName         string  `json:"OBJECT_NAME"`
	ObjectID           string  `json:"OBJECT_ID"`   // "1998-067A"
	EpochStr           string  `json:"EPOCH"`       // ISO 8601, UTC when no zone is given
	MeanMotion         float64 `json:"MEAN_MOTION"` // rev/day
	Eccentricity       float64 `json:"ECCENTRICITY"`
	Inclination        float64 `json:"INCLINATION"`       // degrees
	RAOfAscNode        float64 `json:"RA_OF_ASC_NODE"`    // degrees
	ArgOfPericenter    float64 `json:"ARG_OF_PERICENTER"` // degrees
	MeanAnomaly        float64 `json:"MEAN_ANOMALY"`      // degrees
	EphemerisType      int     `json:"EPHEMERIS_TYPE"`
	ClassificationType string  `json:"CLASSIFICATION_TYPE"`
	NoradCatID         int     `json:"NORAD_CAT_ID"`
	ElementSetNo       int     `json:"ELEMENT_SET_NO"`
	RevAtEpoch         int     `json:"REV_AT_EPOCH"`
	BStar              float64 `json:"BSTAR"`            // 1/earth radii
	MeanMotionDot      float64 `json:"MEAN_MOTION_DOT"`  // ndot/2, rev/day²
	MeanMotionDDot     float64 `json:"MEAN_MOTION_DDOT"` // nddot/6, rev/day³

	CenterName        string `json:"CENTER_NAME,omitempty"`
	RefFrame          string `json:"REF_FRAME,omitempty"`
	TimeSystem        string `json:"TIME_SYSTEM,omitempty"`
	MeanElementTheory string `json:"MEAN_ELEMENT_THEORY,omitempty"`
}

// ParseOMMs decodes a JSON array of OMM objects.
func ParseOMMs(jsonData []byte) ([]OMM, error) {
	var omms []OMM
	if err := json.Unmarshal(jsonData, &omms); err != nil {
		return nil, fmt.Errorf("error unmarshalling OMM JSON: %w", err)
	}
	return omms, nil
}

var ommEpochLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// parseOMMEpoch parses an OMM epoch. Times without a zone are UTC.
func parseOMMEpoch(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range ommEpochLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("error parsing OMM epoch %q: %w", s, firstErr)
}

// epochDay returns the four-digit year and the fractional day of year
// (1.0 at January 1 0h) of t.
func epochDay(t time.Time) (year int, day float64) {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	frac := float64(t.Sub(midnight).Nanoseconds()) / (secondsPerDay * 1e9)
	return t.Year(), float64(t.YearDay()) + frac
}

// internationalDesignator converts an OBJECT_ID such as "1998-067A" to the
// TLE form "98067A".
func internationalDesignator(objectID string) (string, error) {
	year, piece, ok := strings.Cut(objectID, "-")
	if !ok || len(year) < 2 || len(piece) < 4 {
		return "", fmt.Errorf("invalid OBJECT_ID %q: expected YYYY-NNNP{PP}", objectID)
	}
	return year[len(year)-2:] + piece, nil
}

// ToTLE converts the message to a TLE. Checksums are left at zero since
// there are no text lines to derive them from.
func (o *OMM) ToTLE() (*TLE, error) {
	if o.Eccentricity < 0 || o.Eccentricity >= 1 {
		return nil, fmt.Errorf("eccentricity from OMM (%.10f) is out of TLE bounds [0,1)", o.Eccentricity)
	}
	if o.Inclination < 0 || o.Inclination > 180 {
		return nil, fmt.Errorf("inclination from OMM (%.4f) is out of TLE bounds [0,180]", o.Inclination)
	}

	intl, err := internationalDesignator(o.ObjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to convert ObjectID to TLE International: %w", err)
	}
	epoch, err := parseOMMEpoch(o.EpochStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OMM epoch: %w", err)
	}

	tle := &TLE{
		Name:             o.ObjectName,
		SatelliteNumber:  o.NoradCatID,
		Classification:   'U',
		International:    intl,
		MeanMotionDot:    o.MeanMotionDot,
		MeanMotionDot2:   o.MeanMotionDDot,
		Bstar:            o.BStar,
		ElementNumber:    o.ElementSetNo,
		Inclination:      o.Inclination,
		RightAscension:   o.RAOfAscNode,
		Eccentricity:     o.Eccentricity,
		ArgOfPerigee:     o.ArgOfPericenter,
		MeanAnomaly:      o.MeanAnomaly,
		MeanMotion:       o.MeanMotion,
		RevolutionNumber: o.RevAtEpoch,
	}
	if o.ClassificationType != "" {
		tle.Classification = rune(o.ClassificationType[0])
	}
	tle.EpochYear, tle.EpochDay = epochDay(epoch)
	return tle, nil
}

// Elements converts the message to propagator units.
func (o *OMM) Elements() (Elements, error) {
	tle, err := o.ToTLE()
	if err != nil {
		return Elements{}, err
	}
	return tle.Elements(), nil
}
