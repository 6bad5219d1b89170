package webhook

import "time"

// Payload is the decoded body of an inbound automation call
type Payload struct {
	Source  string   `json:"source,omitempty"`
	Message string   `json:"message" validate:"required,max=200"`
	Tags    []string `json:"tags,omitempty"`
}

// Event is the audit record of one inbound automation call. Events are
// immutable after insertion into the log.
type Event struct {
	ID              string    `json:"id"`
	ReceivedAt      time.Time `json:"received_at"`
	Source          string    `json:"source,omitempty"`
	Payload         Payload   `json:"payload"`
	ResultingNoteID *int64    `json:"resulting_note_id,omitempty"`
}
