// Package scorer turns per-district facility counts and nearest
// distances into normalized accessibility scores.
package scorer

import (
	"github.com/cityscale/healthatlas/internal/model"
)

// Score fills the accessibility score of every district from its
// FacilityCount and NearestKM fields and returns the same slice.
//
// countScore    = count / max(count) * 50
// distanceScore = (1 - nearestKM / max(nearestKM)) * 50
// score         = countScore + distanceScore, clamped to [0, 100]
//
// Scores are min/max-normalized against this run's districts and are
// only comparable within one run. Degenerate inputs have explicit
// floors: when no district has a facility all count scores are 0, and
// when every nearest distance is 0 all distance scores are 50.
func Score(districts []model.District) []model.District {
	var maxCount int
	var maxKM float64
	for i := range districts {
		if districts[i].FacilityCount > maxCount {
			maxCount = districts[i].FacilityCount
		}
		if districts[i].NearestKM > maxKM {
			maxKM = districts[i].NearestKM
		}
	}

	for i := range districts {
		var countScore float64
		if maxCount > 0 {
			countScore = float64(districts[i].FacilityCount) / float64(maxCount) * 50
		}

		distanceScore := 50.0
		if maxKM > 0 {
			distanceScore = (1 - districts[i].NearestKM/maxKM) * 50
		}

		score := countScore + distanceScore
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		districts[i].Score = score
	}
	return districts
}
