package schema

import "time"

// RequestLogColumns are the request_logs columns in the order ListRows reports them.
var RequestLogColumns = []string{"id", "name", "category", "status", "response_time", "request_date"}

// RequestLog is one row of the request_logs table.
type RequestLog struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	ResponseTime string    `json:"response_time"` // kept as text so values like "200ms" survive
	RequestDate  time.Time `json:"request_date"`
}
