package fiber

type ErrorResponse struct {
	Error   string `json:"error" example:"configuration_error"`
	Message string `json:"message" example:"kpi total_app requires field total_app"`
}
