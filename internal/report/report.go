// Package report extracts the parity journey report from a workflow
// artifact archive and applies the gate's pass policy to it. It never
// touches the network; callers hand it the raw archive bytes.
package report

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/errors"
)

// Report is the parity journey report uploaded by the nightly workflow.
//
// RequiredJourneys stays raw: the pass policy only inspects it when it is a
// JSON object, and a wrong-typed value must fall back to overall_pass
// rather than fail decoding.
type Report struct {
	OverallPass      *bool           `json:"overall_pass"`
	RequiredJourneys json.RawMessage `json:"required_journeys"`
}

// FromArchive extracts and decodes the journey report from an artifact ZIP
// archive. The report may sit at any path inside the archive; the first
// entry whose name ends in parity_journey_report.json wins.
func FromArchive(zipBytes []byte) (*Report, error) {
	reader, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip archive: %v", errors.ErrReportMalformed, err) //nolint:errorlint // intentional hybrid wrap
	}

	for _, entry := range reader.File {
		if !strings.HasSuffix(entry.Name, constants.ReportFileName) {
			continue
		}
		return decodeEntry(entry)
	}

	return nil, fmt.Errorf("%w: archive has no %s entry", errors.ErrArtifactMissing, constants.ReportFileName)
}

// decodeEntry reads a single archive entry into a Report.
func decodeEntry(entry *zip.File) (*Report, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", errors.ErrReportMalformed, entry.Name, err) //nolint:errorlint // intentional hybrid wrap
	}
	defer rc.Close() //nolint:errcheck // zip entry close

	var r Report
	if err := json.NewDecoder(rc).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", errors.ErrReportMalformed, entry.Name, err) //nolint:errorlint // intentional hybrid wrap
	}

	return &r, nil
}

// Passes reports whether the report satisfies the gate's pass policy.
//
// The decision is, in order:
//  1. overall_pass explicitly false fails.
//  2. If required_journeys is a JSON object, every journey value must be
//     truthy; an empty object passes vacuously.
//  3. Otherwise overall_pass decides, with absent defaulting to pass.
func (r *Report) Passes() bool {
	if r.OverallPass != nil && !*r.OverallPass {
		return false
	}

	if journeys, ok := r.journeyMap(); ok {
		for _, v := range journeys {
			if !truthy(v) {
				return false
			}
		}
		return true
	}

	if r.OverallPass != nil {
		return *r.OverallPass
	}
	return true
}

// journeyMap decodes required_journeys as a JSON object. A missing, null, or
// wrong-typed value reports ok=false so the policy falls back to
// overall_pass, exactly as the nightly harness does.
func (r *Report) journeyMap() (map[string]json.RawMessage, bool) {
	if len(r.RequiredJourneys) == 0 {
		return nil, false
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(r.RequiredJourneys, &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// truthy applies JSON-value truthiness: null, false, 0, "", empty arrays
// and empty objects are falsy; everything else is truthy.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}

	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return false
	}
}
