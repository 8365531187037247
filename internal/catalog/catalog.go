// Package catalog reads collections of element sets from TLE text files and
// OMM JSON documents.
package catalog

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/akhenakh/sgp4sdp4"
)

// Load reads a catalog file. Files ending in .json are decoded as an OMM
// array, anything else as a TLE stream.
func Load(path string, logger *slog.Logger) ([]sgp4sdp4.Elements, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog")
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseOMM(f, logger)
	}
	return ParseTLE(f, logger)
}

// ParseTLE reads element sets in 2-line or 3-line form, which may be mixed
// within one stream. Malformed entries are skipped with a warning.
func ParseTLE(r io.Reader, logger *slog.Logger) ([]sgp4sdp4.Elements, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading TLE data")
	}

	isLine := func(i int, n byte) bool {
		return i < len(lines) && len(lines[i]) > 1 && lines[i][0] == n && lines[i][1] == ' '
	}

	var out []sgp4sdp4.Elements
	for i := 0; i < len(lines); {
		var name string
		switch {
		case isLine(i, '1') && isLine(i+1, '2'):
		case isLine(i+1, '1') && isLine(i+2, '2'):
			name = lines[i]
			i++
		default:
			logger.Warn("skipping malformed TLE entry", "line_index", i, "line", lines[i])
			i++
			continue
		}

		tle, err := sgp4sdp4.ParseTLELines(name, lines[i], lines[i+1])
		i += 2
		if err != nil {
			logger.Warn("skipping invalid TLE", "name", name, "error", err)
			continue
		}
		out = append(out, tle.Elements())
	}
	return out, nil
}

// ParseOMM reads a JSON array of OMM objects. Objects that cannot be
// converted to element sets are skipped with a warning.
func ParseOMM(r io.Reader, logger *slog.Logger) ([]sgp4sdp4.Elements, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading OMM data")
	}
	omms, err := sgp4sdp4.ParseOMMs(data)
	if err != nil {
		return nil, errors.Wrap(err, "decoding OMM data")
	}

	out := make([]sgp4sdp4.Elements, 0, len(omms))
	for i := range omms {
		e, err := omms[i].Elements()
		if err != nil {
			logger.Warn("skipping invalid OMM", "norad_id", omms[i].NoradCatID, "name", omms[i].ObjectName, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
