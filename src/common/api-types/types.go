// Package api_types holds the JSON bodies of the dashboard API.
package api_types

type ErrorResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message"`
	Stack   *string `json:"stack,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Row is one train keyed by normalized column name.
type Row = map[string]any

type UploadResponse struct {
	SessionID string   `json:"session_id"`
	Rows      int      `json:"rows"`
	Columns   []string `json:"columns"`
	Preview   []Row    `json:"preview"`
}

type ImportRequest struct {
	Table string `json:"table"`
}

type RankingResponse struct {
	Types        []string `json:"types"`
	UnknownTypes []string `json:"unknown_types"`
	Total        int      `json:"total"`
	Columns      []string `json:"columns"`
	Rows         []Row    `json:"rows"`
	Preview      []Row    `json:"preview"`
	Highlight    []Row    `json:"highlight"`
	// Headlines renders the highlight as "🚄 <name> | Urgency: <x.x>".
	Headlines []string `json:"headlines"`
}

type SummaryResponse struct {
	MaxUrgency      float64 `json:"max_urgency"`
	MinUrgency      float64 `json:"min_urgency"`
	AvgDurationMins int     `json:"avg_duration_mins"`
	TotalTrains     int     `json:"total_trains"`
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type HistogramResponse struct {
	Column string         `json:"column"`
	Bins   []HistogramBin `json:"bins"`
}

type TypesResponse struct {
	Types []string `json:"types"`
}
