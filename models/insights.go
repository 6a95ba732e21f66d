package models

// ForecastDay is one day of the visitor forecast.
type ForecastDay struct {
	Day   string `json:"day" binding:"required"`
	Level int    `json:"level" binding:"min=1,max=10"` // 10 is the busiest
}

// WaitTimeRequest asks for a darshan waiting-time estimate.
type WaitTimeRequest struct {
	CrowdLevel int    `json:"crowdLevel" binding:"min=0,max=10"`
	TimeOfDay  string `json:"timeOfDay" binding:"required"`
}

// SafetyAlertRequest describes a situation pilgrims should be warned about.
type SafetyAlertRequest struct {
	Situation string `json:"situation" binding:"required"`
}

// ForecastSummaryRequest carries the forecast to summarise.
type ForecastSummaryRequest struct {
	Forecast []ForecastDay `json:"forecast" binding:"required,min=1,dive"`
}
