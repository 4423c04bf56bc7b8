package fiber

// FilterOptionsResponse lists what the dashboard filters can select
// @Description Filter options DTO
type FilterOptionsResponse struct {
	MinDate  string              `json:"min_date,omitempty" example:"2024-01-01"`
	MaxDate  string              `json:"max_date,omitempty" example:"2024-01-31"`
	Values   map[string][]string `json:"values"`
	Rows     int                 `json:"rows"`
	LoadedAt string              `json:"loaded_at,omitempty" example:"2024-02-01T10:00:00Z"`
}

type InvalidateResponse struct {
	Status string `json:"status" example:"invalidated"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"load_failed"`
	Message string `json:"message" example:"activity source is unavailable"`
}
