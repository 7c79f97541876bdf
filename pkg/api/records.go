// Package api contains the JSON wire types shared by the quotesync client and server.
package api

// Record представляет цитату в HTTP API
type Record struct {
	ID        string `json:"id"`         // идентификатор записи
	Text      string `json:"text"`       // текст цитаты
	Category  string `json:"category"`   // категория
	UpdatedAt int64  `json:"updated_at"` // время последнего изменения (unix ms)
}

// RecordsResponse ответ на GET /api/v1/records
type RecordsResponse struct {
	Records []Record `json:"records"`
}

// Ack подтверждение upsert записи (PUT /api/v1/records/{id})
type Ack struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
