package models

// Settlement holds the five derived cost outputs of a return. They are always
// computed and persisted together; there is no partial-cost state.
type Settlement struct {
	DistanceTravelledKM float64 `json:"distance_travelled_km"`
	DurationHours       int     `json:"duration_hours"`
	CostPerDistance     float64 `json:"cost_per_distance"`
	CostPerTime         float64 `json:"cost_per_time"`
	DamageCost          float64 `json:"damage_cost"`
	FinalCost           float64 `json:"final_cost"`
}
