package models

// GORM models

import "time"

// BaseModel carries the common persistence fields.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AskQuery records one assistant question for analytics. Persisted
// only when a database is configured; the serving path never depends
// on it.
type AskQuery struct {
	BaseModel
	QuestionText   string    `json:"question_text" gorm:"not null"`
	UserSession    string    `json:"user_session"`
	HitsCount      int       `json:"hits_count" gorm:"default:0"`
	Fallback       bool      `json:"fallback" gorm:"default:false"`
	FallbackTicket string    `json:"fallback_ticket"`
	AskedAt        time.Time `json:"asked_at" gorm:"default:NOW()"`
	ResponseTimeMs int       `json:"response_time_ms"`
	UserAgent      string    `json:"user_agent"`
	IPAddress      string    `json:"ip_address"`
}

// AskQueryRepository is the persistence contract for ask analytics.
type AskQueryRepository interface {
	Create(query *AskQuery) error
	GetBySession(session string) ([]AskQuery, error)
	GetRecent(limit int) ([]AskQuery, error)
}
