package fiber

type GroupResponse struct {
	Key   string  `json:"key" example:"2024-01-01"`
	Value float64 `json:"value" example:"42"`
}

// AggregateResponse is one grouped figure
// @Description Aggregate DTO
type AggregateResponse struct {
	Dimension string          `json:"dimension" example:"date"`
	Op        string          `json:"op" example:"count"`
	Field     string          `json:"field,omitempty"`
	TopN      int             `json:"top_n,omitempty"`
	Total     float64         `json:"total"`
	NoData    bool            `json:"no_data"`
	Groups    []GroupResponse `json:"groups"`
}

type KPIResponse struct {
	Name  string  `json:"name" example:"total_events"`
	Label string  `json:"label" example:"Total events"`
	Value float64 `json:"value" example:"1250"`
}

type ChartResponse struct {
	Name   string `json:"name" example:"events_by_day"`
	Title  string `json:"title" example:"Events per day"`
	Kind   string `json:"kind" example:"line"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	AggregateResponse
}

// DashboardResponse carries the KPIs and every available chart
// @Description Dashboard DTO
type DashboardResponse struct {
	From     string          `json:"from" example:"2024-01-01"`
	To       string          `json:"to" example:"2024-01-31"`
	RowCount int             `json:"row_count"`
	KPIs     []KPIResponse   `json:"kpis"`
	Charts   []ChartResponse `json:"charts"`
}

type GeoPointResponse struct {
	Latitude  float64 `json:"lat" example:"-0.18"`
	Longitude float64 `json:"lon" example:"-78.47"`
	Label     string  `json:"label,omitempty" example:"Quito"`
}

type GeoResponse struct {
	Points []GeoPointResponse `json:"points"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_aggregate"`
	Message string `json:"message" example:"invalid dimension: \"latitude\""`
}
