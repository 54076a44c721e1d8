package events

import "time"

// EstimateEvent is published for every computed estimate.
type EstimateEvent struct {
	EstimateID       string    `json:"estimate_id"`
	CreatedAt        time.Time `json:"created_at"`
	Metal            string    `json:"metal"`
	ProductionRoute  string    `json:"production_route"`
	State            string    `json:"state,omitempty"`
	Co2PerKg         float64   `json:"co2_per_kg"`
	TotalCo2PerTonne float64   `json:"co2_per_tonne_incl_transport"`
	CircularityScore float64   `json:"circularity_score"`
	FlagTopics       []string  `json:"flag_topics"`
}

// ReportEvent is published for every exported report.
type ReportEvent struct {
	EstimateID string `json:"estimate_id"`
	Format     string `json:"format"`
	SizeBytes  int    `json:"size_bytes"`
}
