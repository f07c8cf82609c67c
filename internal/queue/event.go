// Package queue defines message payloads exchanged over the message broker.
package queue

// FeeAlertEvent is published when a fee reminder is requested for a student.
// It carries everything a downstream delivery worker needs (recipient and
// message text) without querying the primary database.
type FeeAlertEvent struct {
	Seat    string  `json:"seat"`
	Name    string  `json:"name"`
	Mobile  string  `json:"mobile"`
	Fee     float64 `json:"fee"`
	Message string  `json:"message"`
	SentAt  string  `json:"sent_at"`
}
