package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// PaymentMethod is how the customer settles the order.
type PaymentMethod string

// List of payment methods
const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentWallet PaymentMethod = "wallet"
	PaymentCard   PaymentMethod = "card"
)

// Valid checks if the PaymentMethod is known.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentWallet, PaymentCard:
		return true
	default:
		return false
	}
}

// Address is a structured delivery address.
type Address struct {
	Street        string `validate:"required"`
	City          string `validate:"required"`
	State         string `validate:"required"`
	PostalCode    string `validate:"required,len=6,numeric"`
	ContactNumber string `validate:"required,min=7,max=15"`
	Landmark      string
}

// Item is one order line with the price snapshotted at creation.
type Item struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"gte=1,lte=10000"`
	UnitPrice Money  `validate:"gte=0"`
}

// Broadcast is a customer's order intent awaiting (or past) retailer acceptance.
type Broadcast struct {
	ID                uuid.UUID
	CustomerID        string
	RetailerID        string // empty until claimed
	Items             []Item
	Origin            orb.Point
	DeliveryAddress   Address
	PaymentMethod     PaymentMethod
	Status            Status
	Subtotal          Money
	GrandTotal        Money
	CreatedAt         time.Time
	ExpiryTime        time.Time
	AcceptedAt        *time.Time
	DeliveredAt       *time.Time
	EligibleRetailers []string
	AssignedAgentID   string // empty until a delivery agent is reserved
}

// Claimable reports whether the broadcast may still be claimed at now.
func (b *Broadcast) Claimable(now time.Time) bool {
	return b.Status == StatusPending && b.ExpiryTime.After(now)
}

// Eligible reports whether retailerID is in the creation-time snapshot.
func (b *Broadcast) Eligible(retailerID string) bool {
	for _, id := range b.EligibleRetailers {
		if id == retailerID {
			return true
		}
	}
	return false
}

// OrderLine is a requested item before pricing.
type OrderLine struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"gte=1,lte=10000"`
}

// CreateInput carries a customer's broadcast request.
type CreateInput struct {
	CustomerID      string      `validate:"required"`
	Lines           []OrderLine `validate:"required,min=1,dive"`
	DeliveryAddress Address
	Origin          orb.Point
	PaymentMethod   PaymentMethod
}

// ClaimResult is the outcome of a conditional claim on a pending broadcast.
type ClaimResult int

// List of claim outcomes
const (
	ClaimNotFound ClaimResult = iota
	Claimed
	ClaimAlreadyClaimed
	ClaimExpired
	ClaimNotEligible
)

func (r ClaimResult) String() string {
	switch r {
	case Claimed:
		return "claimed"
	case ClaimAlreadyClaimed:
		return "already_claimed"
	case ClaimExpired:
		return "expired"
	case ClaimNotEligible:
		return "not_eligible"
	default:
		return "not_found"
	}
}

// UpdateResult is the outcome of a conditional status update.
type UpdateResult int

// List of update outcomes
const (
	UpdateNotFound UpdateResult = iota
	Updated
	UpdateConflict
)

func (r UpdateResult) String() string {
	switch r {
	case Updated:
		return "updated"
	case UpdateConflict:
		return "conflict"
	default:
		return "not_found"
	}
}

// ClassifyClaim decides why a conditional claim matched nothing, given the
// current row. A nil broadcast means the id is unknown.
func ClassifyClaim(b *Broadcast, retailerID string, now time.Time) ClaimResult {
	switch {
	case b == nil:
		return ClaimNotFound
	case b.Status == StatusExpired:
		return ClaimExpired
	case b.Status != StatusPending:
		return ClaimAlreadyClaimed
	case !b.ExpiryTime.After(now):
		return ClaimExpired
	case !b.Eligible(retailerID):
		return ClaimNotEligible
	default:
		return ClaimAlreadyClaimed
	}
}
