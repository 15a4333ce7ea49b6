package schema

// StoreStatus represents the status of the record store.
type StoreStatus struct {
	Backend        string `json:"backend"`
	Connected      bool   `json:"connected"`
	TotalRows      int    `json:"total_rows"`
	NewestDate     string `json:"newest_date"`
	OldestDate     string `json:"oldest_date"`
	TableSizeBytes int64  `json:"table_size_bytes"`
}
