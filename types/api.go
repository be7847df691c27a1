package types

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status    int    `json:"status"`
	TimeStamp int64  `json:"timestamp"`
	RunID     string `json:"runId"`
	Running   bool   `json:"running"`
}

type StatsResponse struct {
	RunID       string `json:"runId"`
	Running     bool   `json:"running"`
	Cycles      int64  `json:"cycles"`
	Jobs        int64  `json:"jobs"`
	Images      int64  `json:"images"`
	LastSavedAt int64  `json:"lastSavedAt,omitempty"`
	LastError   string `json:"lastError,omitempty"`
}
