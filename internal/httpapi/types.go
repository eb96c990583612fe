package httpapi

// RunStatus is the last-known pipeline state served by /run/status.
type RunStatus struct {
	LastRunAt     string `json:"last_run_at"`
	LastOkAt      string `json:"last_ok_at"`
	LastError     string `json:"last_error"`
	LastProcessed int    `json:"last_processed"`
	LastFailed    int    `json:"last_failed"`
	Running       bool   `json:"running"`
}
