// Package services orchestrates the command interpreter with the async
// event pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gullak/internal/amqp"
	"gullak/internal/ledger"
	"gullak/internal/log"
)

// CommandService executes a chat command against the ledger store and,
// when the pipeline is configured, publishes the outcome as an audit
// event. Publishing is best-effort: the command result stands even when
// the broker is down.
type CommandService struct {
	interpreter *ledger.Interpreter
	amqpClient  *amqp.Client
}

func NewCommandService(interpreter *ledger.Interpreter, amqpClient *amqp.Client) *CommandService {
	return &CommandService{
		interpreter: interpreter,
		amqpClient:  amqpClient,
	}
}

// Execute runs one command for one user and returns the response text.
func (s *CommandService) Execute(ctx context.Context, userID, command string) (string, error) {
	resp, err := s.interpreter.Execute(ctx, userID, command)
	if err != nil {
		return "", fmt.Errorf("execute command: %w", err)
	}

	if err := s.publishEvent(ctx, userID, command, resp); err != nil {
		slog.ErrorContext(ctx, "Failed to publish command event",
			log.FieldError, err,
			log.FieldUserID, userID)
		// Don't fail the request - the ledger mutation already happened
	}

	return resp, nil
}

func (s *CommandService) publishEvent(ctx context.Context, userID, command, response string) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping command event")
		return nil
	}
	event := amqp.NewCommandEvent(userID, verbOf(command), command, response)
	return s.amqpClient.PublishCommandEvent(ctx, event)
}

// verbOf extracts the leading verb for event labeling.
func verbOf(command string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(command)))
	if len(fields) == 0 {
		return "unknown"
	}
	switch fields[0] {
	case "set", "edit", "delete":
		if len(fields) > 1 && fields[1] == "budget" {
			return fields[0] + " budget"
		}
		return "unknown"
	case "spent", "owe", "bill", "summary":
		return fields[0]
	default:
		return "unknown"
	}
}

// Close releases the AMQP connection when present.
func (s *CommandService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
