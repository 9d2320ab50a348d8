package events

import (
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
)

// DeliveryEvent is a status report from a delivery agent's app
type DeliveryEvent struct {
	BroadcastID uuid.UUID
	AgentID     string
	Status      domain.Status
	OccurredAt  time.Time
}
