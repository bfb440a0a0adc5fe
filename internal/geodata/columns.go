// Package geodata loads and saves facility and district datasets in
// GeoJSON, shapefile, and CSV form.
package geodata

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ErrAmbiguousColumn marks a district dataset whose name column cannot
// be determined. The join and scorer cannot proceed without it, so this
// aborts the run.
var ErrAmbiguousColumn = eris.New("geodata: ambiguous district name column")

// DefaultNameColumns are the property keys tried, in order, when
// resolving the district name column. Turkish open-data exports
// commonly use "ilce" or "ilce_adi".
func DefaultNameColumns() []string {
	return []string{"name", "district_name", "ilce", "ilce_adi", "adi"}
}

// resolveNameColumn picks the first candidate present among the given
// property keys. Matching is case-insensitive because shapefile DBF
// headers are conventionally upper-case.
func resolveNameColumn(keys map[string]struct{}, candidates []string) (string, error) {
	if len(candidates) == 0 {
		candidates = DefaultNameColumns()
	}
	lower := make(map[string]string, len(keys))
	for k := range keys {
		lower[strings.ToLower(k)] = k
	}
	for _, cand := range candidates {
		if actual, ok := lower[strings.ToLower(cand)]; ok {
			return actual, nil
		}
	}
	return "", eris.Wrapf(ErrAmbiguousColumn, "no candidate among %v matches", candidates)
}
