// Package fanout pushes dispatch events to retailer, customer and agent channels.
// Delivery is best-effort: nothing is persisted and a failed push is never retried.
package fanout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"service-dispatch/internal/domain"
)

// EventType names a push event.
type EventType string

// List of push events
const (
	EventBroadcastCreated  EventType = "broadcast.created"
	EventBroadcastAccepted EventType = "broadcast.accepted"
	EventStatusChanged     EventType = "broadcast.status_changed"
	EventDeliveryAssigned  EventType = "delivery.assigned"
)

// Fanout delivers one event to one channel.
type Fanout interface {
	Push(ctx context.Context, channel string, ev Event) error
}

// RetailerChannel returns the channel of a retailer.
func RetailerChannel(id string) string { return "retailer:" + id }

// CustomerChannel returns the channel of a customer.
func CustomerChannel(id string) string { return "customer:" + id }

// AgentChannel returns the channel of a delivery agent.
func AgentChannel(id string) string { return "agent:" + id }

// Event is the push envelope. It carries the full broadcast snapshot so a
// client can render state without fetching.
type Event struct {
	Type       EventType         `json:"type"`
	OccurredAt time.Time         `json:"occurred_at"`
	Broadcast  BroadcastSnapshot `json:"broadcast"`
	Agent      *AgentSnapshot    `json:"agent,omitempty"`
}

// Encode returns the JSON form of ev.
func (ev Event) Encode() ([]byte, error) { return json.Marshal(ev) }

// BroadcastSnapshot is the denormalized broadcast sent to clients.
type BroadcastSnapshot struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	RetailerID      string          `json:"retailer_id,omitempty"`
	Status          string          `json:"status"`
	Items           []ItemSnapshot  `json:"items"`
	DeliveryAddress AddressSnapshot `json:"delivery_address"`
	Coordinates     [2]float64      `json:"coordinates"`
	PaymentMethod   string          `json:"payment_method"`
	SubtotalCents   int64           `json:"subtotal_cents"`
	GrandTotalCents int64           `json:"grand_total_cents"`
	CreatedAt       time.Time       `json:"created_at"`
	ExpiryTime      time.Time       `json:"expiry_time"`
	AcceptedAt      *time.Time      `json:"accepted_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	AssignedAgentID string          `json:"assigned_agent_id,omitempty"`
}

// ItemSnapshot is one priced line.
type ItemSnapshot struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// AddressSnapshot mirrors domain.Address.
type AddressSnapshot struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	ContactNumber string `json:"contact_number"`
	Landmark      string `json:"landmark,omitempty"`
}

// AgentSnapshot identifies the reserved delivery agent.
type AgentSnapshot struct {
	ID         string  `json:"id"`
	RetailerID string  `json:"retailer_id"`
	Rating     float64 `json:"rating"`
}

// NewEvent builds an event for b. The eligibility snapshot never leaves the service.
func NewEvent(typ EventType, b domain.Broadcast, at time.Time) Event {
	s := BroadcastSnapshot{
		ID:              b.ID.String(),
		CustomerID:      b.CustomerID,
		RetailerID:      b.RetailerID,
		Status:          string(b.Status),
		Items:           make([]ItemSnapshot, 0, len(b.Items)),
		DeliveryAddress: AddressSnapshot(b.DeliveryAddress),
		Coordinates:     [2]float64{b.Origin.Lon(), b.Origin.Lat()},
		PaymentMethod:   string(b.PaymentMethod),
		SubtotalCents:   int64(b.Subtotal),
		GrandTotalCents: int64(b.GrandTotal),
		CreatedAt:       b.CreatedAt,
		ExpiryTime:      b.ExpiryTime,
		AcceptedAt:      b.AcceptedAt,
		DeliveredAt:     b.DeliveredAt,
		AssignedAgentID: b.AssignedAgentID,
	}
	for _, it := range b.Items {
		s.Items = append(s.Items, ItemSnapshot{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: int64(it.UnitPrice),
		})
	}
	return Event{Type: typ, OccurredAt: at, Broadcast: s}
}

// WithAgent attaches the agent snapshot.
func (ev Event) WithAgent(a *domain.DeliveryAgent) Event {
	if a != nil {
		ev.Agent = &AgentSnapshot{ID: a.ID, RetailerID: a.RetailerID, Rating: a.Rating}
	}
	return ev
}

// Nop drops every event.
type Nop struct{}

// Push does nothing.
func (Nop) Push(context.Context, string, Event) error { return nil }

// Multi pushes to every transport and joins their errors.
type Multi []Fanout

// Push delivers ev through each transport in order.
func (m Multi) Push(ctx context.Context, channel string, ev Event) error {
	var errs []error
	for _, f := range m {
		if err := f.Push(ctx, channel, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ Fanout = Nop{}
	_ Fanout = Multi(nil)
)
