package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/events"
)

// EventDTO is the wire form of a delivery agent status report
type EventDTO struct {
	BroadcastID string    `json:"broadcast_id"`
	AgentID     string    `json:"agent_id"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ToDomain converts EventDTO to events.DeliveryEvent
func ToDomain(dto EventDTO) (events.DeliveryEvent, error) {
	id, err := uuid.Parse(strings.TrimSpace(dto.BroadcastID))
	if err != nil {
		return events.DeliveryEvent{}, fmt.Errorf("broadcast_id %q: %w", dto.BroadcastID, err)
	}
	agentID := strings.TrimSpace(dto.AgentID)
	if agentID == "" {
		return events.DeliveryEvent{}, fmt.Errorf("empty agent_id")
	}
	return events.DeliveryEvent{
		BroadcastID: id,
		AgentID:     agentID,
		Status:      domain.Status(strings.ToLower(strings.TrimSpace(dto.Status))),
		OccurredAt:  dto.OccurredAt,
	}, nil
}
