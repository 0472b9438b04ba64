package dto

type AnalysisPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type InsightsResponse struct {
	Insights       []string        `json:"insights"`
	AnalysisPeriod *AnalysisPeriod `json:"analysis_period,omitempty"`
}
