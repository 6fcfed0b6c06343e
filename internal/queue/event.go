// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// AccountDeletedEvent is published when a user account is removed.
// Downstream consumers use it to clean up derived data or notify other
// systems; the primary database has already cascaded the user's
// transactions away by the time the event is sent.
type AccountDeletedEvent struct {
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	DeletedAt string `json:"deleted_at"`
}

// AccountQueueName is the durable queue carrying AccountDeletedEvent
// messages.
const AccountQueueName = "account.deleted"
