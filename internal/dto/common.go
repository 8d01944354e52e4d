package dto

// ErrorResponse is the uniform failure envelope. It is used both for hard
// failures (4xx/5xx) and for 200-coded soft failures such as "no data yet".
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func Errorf(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
