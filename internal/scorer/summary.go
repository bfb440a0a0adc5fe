package scorer

import (
	"sort"

	"github.com/cityscale/healthatlas/internal/model"
)

// Summarize computes the flat summary record for a scored district set.
// Best and worst districts are chosen by max/min score; ties resolve to
// the first district in input order.
func Summarize(districts []model.District) model.Summary {
	s := model.Summary{TotalDistricts: len(districts)}
	if len(districts) == 0 {
		return s
	}

	distances := make([]float64, 0, len(districts))
	var sumFacilities int
	var sumScore float64
	best, worst := 0, 0
	for i := range districts {
		sumFacilities += districts[i].FacilityCount
		sumScore += districts[i].Score
		distances = append(distances, districts[i].NearestKM)
		if districts[i].Score > districts[best].Score {
			best = i
		}
		if districts[i].Score < districts[worst].Score {
			worst = i
		}
	}

	sort.Float64s(distances)
	s.TotalFacilities = sumFacilities
	s.MeanFacilities = float64(sumFacilities) / float64(len(districts))
	s.MedianNearestKM = median(distances)
	s.MinNearestKM = distances[0]
	s.MaxNearestKM = distances[len(distances)-1]
	s.MeanScore = sumScore / float64(len(districts))
	s.BestDistrict = districts[best].Name
	s.WorstDistrict = districts[worst].Name
	return s
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
