package monitor

import "time"

// Status is the last observed reachability of the remote API.
type Status struct {
	API        bool          `json:"api"`
	StatusCode int           `json:"status_code,omitempty"`
	Latency    time.Duration `json:"latency"`
	Error      string        `json:"error,omitempty"`
	LastCheck  time.Time     `json:"last_check"`
}
