package domain

import "github.com/paulmach/orb"

// Retailer is read from the retailer directory; this service never mutates it.
type Retailer struct {
	ID           string
	ServicePoint orb.Point
	ServiceAreas []string
	IsActive     bool
}

// Serves reports whether the retailer lists postalCode among its service areas.
func (r Retailer) Serves(postalCode string) bool {
	for _, area := range r.ServiceAreas {
		if area == postalCode {
			return true
		}
	}
	return false
}

// DeliveryAgent is a delivery resource belonging to a retailer.
type DeliveryAgent struct {
	ID          string
	RetailerID  string
	Location    orb.Point
	IsAvailable bool
	Rating      float64
}

// ActorKind identifies who is requesting a transition.
type ActorKind string

// List of actor kinds
const (
	ActorCustomer ActorKind = "customer"
	ActorRetailer ActorKind = "retailer"
	ActorAgent    ActorKind = "agent"
	ActorSystem   ActorKind = "system"
)

// Actor is an authenticated caller supplied by the gateway.
type Actor struct {
	Kind ActorKind
	ID   string
}

// AcceptResult is returned to the winning retailer.
type AcceptResult struct {
	Broadcast Broadcast
	Agent     *DeliveryAgent
}
