package models

// MessageFilters defines parameters for paginated message queries.
type MessageFilters struct {
	ConversationID string `json:"conversation_id"`
	Page           int    `json:"page"`
	Limit          int    `json:"limit"`
}

// PaginatedResponse is a generic structure for paginated API responses.
type PaginatedResponse struct {
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalRecords int64       `json:"total_records"`
	TotalPages   int         `json:"total_pages"`
	Records      interface{} `json:"records"` // Can hold any type of record slice
}
