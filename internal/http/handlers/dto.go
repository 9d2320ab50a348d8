package handlers

import "time"

type coordinatesDTO struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type addressDTO struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	ContactNumber string `json:"contact_number"`
	Landmark      string `json:"landmark,omitempty"`
}

type orderLineDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createBroadcastRequest struct {
	Items           []orderLineDTO `json:"items"`
	DeliveryAddress addressDTO     `json:"delivery_address"`
	Coordinates     coordinatesDTO `json:"coordinates"`
	PaymentMethod   string         `json:"payment_method"`
}

type advanceStatusRequest struct {
	Status string `json:"status"`
}

type itemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type agentDTO struct {
	ID         string         `json:"id"`
	RetailerID string         `json:"retailer_id"`
	Location   coordinatesDTO `json:"location"`
	Rating     float64        `json:"rating"`
}

type broadcastDTO struct {
	ID              string         `json:"id"`
	CustomerID      string         `json:"customer_id"`
	RetailerID      string         `json:"retailer_id,omitempty"`
	Status          string         `json:"status"`
	Items           []itemDTO      `json:"items"`
	DeliveryAddress addressDTO     `json:"delivery_address"`
	Coordinates     coordinatesDTO `json:"coordinates"`
	PaymentMethod   string         `json:"payment_method"`
	Subtotal        int64          `json:"subtotal"`
	GrandTotal      int64          `json:"grand_total"`
	GrandTotalText  string         `json:"grand_total_text"`
	CreatedAt       time.Time      `json:"created_at"`
	ExpiryTime      time.Time      `json:"expiry_time"`
	AcceptedAt      *time.Time     `json:"accepted_at,omitempty"`
	DeliveredAt     *time.Time     `json:"delivered_at,omitempty"`
	AssignedAgentID string         `json:"assigned_agent_id,omitempty"`
}

type acceptResponse struct {
	Broadcast broadcastDTO `json:"broadcast"`
	Agent     *agentDTO    `json:"agent"`
}
