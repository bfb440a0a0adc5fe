package model

// Summary aggregates one analysis run into a flat record suitable for
// JSON serialization. Best/worst ties resolve to the first district in
// input order.
type Summary struct {
	TotalDistricts  int     `json:"total_districts"`
	TotalFacilities int     `json:"total_facilities"`
	MeanFacilities  float64 `json:"mean_facilities_per_district"`
	MedianNearestKM float64 `json:"median_nearest_km"`
	MaxNearestKM    float64 `json:"max_nearest_km"`
	MinNearestKM    float64 `json:"min_nearest_km"`
	MeanScore       float64 `json:"mean_accessibility_score"`
	BestDistrict    string  `json:"best_district"`
	WorstDistrict   string  `json:"worst_district"`
	UnassignedCount int     `json:"unassigned_facilities"`
	ProjectedCRS    string  `json:"projected_crs"`
}
