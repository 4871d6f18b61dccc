package models

// Delivery is one recorded send attempt.
type Delivery struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Signature     string `json:"signature"`
	PayloadSHA256 string `json:"payload_sha256"`
	PayloadSize   int    `json:"payload_size"`
	StatusCode    int    `json:"status_code"` // 0 when no response was received
	Error         string `json:"error,omitempty"`
	DurationMs    int64  `json:"duration_ms"`
	ResponseBody  string `json:"response_body,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

func (d *Delivery) Succeeded() bool {
	return d.Error == "" && d.StatusCode >= 200 && d.StatusCode < 300
}
