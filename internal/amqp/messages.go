package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CommandEvent is the audit record published after every executed command.
// It carries the full outcome so the archive worker needs no access to the
// in-memory ledger store.
type CommandEvent struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Verb     string    `json:"verb"`
	Command  string    `json:"command"`
	Response string    `json:"response"`
	At       time.Time `json:"at"`
}

// NewCommandEvent stamps a fresh event with an id and timestamp.
func NewCommandEvent(userID, verb, command, response string) *CommandEvent {
	return &CommandEvent{
		ID:       uuid.NewString(),
		UserID:   userID,
		Verb:     verb,
		Command:  command,
		Response: response,
		At:       time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *CommandEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// CommandEventFromJSON decodes an event from JSON bytes.
func CommandEventFromJSON(data []byte) (*CommandEvent, error) {
	var e CommandEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
