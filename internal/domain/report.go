package domain

import "time"

// Stats aggregates dashboard headline numbers.
type Stats struct {
	TotalConversations int64         `json:"totalConversations"`
	ConversationsToday int64         `json:"conversationsToday"`
	TotalTracking      int64         `json:"totalTracking"`
	TrackingToday      int64         `json:"trackingToday"`
	AverageRating      float64       `json:"averageRating"`
	AverageDurationMin float64       `json:"averageDurationMinutes"`
	RatingDistribution []BucketCount `json:"ratingDistribution"`
	ServiceStats       []BucketCount `json:"serviceStats"`
}

// BucketCount is one row of a GROUP BY distribution.
type BucketCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// ConversationFilter restricts the dashboard conversation list.
type ConversationFilter struct {
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Normalize applies paging defaults and clamps.
func (f *ConversationFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
}

// Offset returns the row offset for the current page.
func (f ConversationFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ConversationPage is one page of conversations plus paging metadata.
type ConversationPage struct {
	Conversations []Conversation `json:"conversations"`
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	TotalPages    int            `json:"totalPages"`
}

// TrackingFilter restricts the dashboard tracking report.
type TrackingFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	City      string
	Sender    string
}

// TrackingRow is one denormalized tracking request as shown on the dashboard.
type TrackingRow struct {
	Kind           TrackingKind `json:"tracking_type"`
	Value          string       `json:"tracking_value"`
	City           *string      `json:"city"`
	Sender         *string      `json:"sender"`
	DocumentNumber *string      `json:"nf"`
	Status         *string      `json:"status"`
	Success        bool         `json:"success"`
	CreatedAt      time.Time    `json:"created_at"`
}

// TrackingReport is the dashboard tracking view with top distributions.
type TrackingReport struct {
	Rows        []TrackingRow `json:"trackingData"`
	CityStats   []BucketCount `json:"cityStats"`
	SenderStats []BucketCount `json:"senderStats"`
	StatusStats []BucketCount `json:"statusStats"`
}

// ConversationHistory is a conversation with its messages and lookups.
type ConversationHistory struct {
	Conversation     Conversation      `json:"conversation"`
	Messages         []MessageLog      `json:"messages"`
	TrackingRequests []TrackingRequest `json:"trackingRequests"`
}
