package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"service-dispatch/internal/domain"
)

const broadcastColumns = `
    id::text, customer_id, COALESCE(retailer_id, ''), items,
    ST_X(origin::geometry), ST_Y(origin::geometry), delivery_address,
    payment_method, status, subtotal_cents, grand_total_cents,
    created_at, expiry_time, accepted_at, delivered_at,
    eligible_retailers, COALESCE(assigned_agent_id, '')`

type itemRow struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type addressRow struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	ContactNumber string `json:"contact_number"`
	Landmark      string `json:"landmark,omitempty"`
}

type scanner interface {
	Scan(dest ...any) error
}

func encodeItems(items []domain.Item) ([]byte, error) {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: int64(it.UnitPrice),
		})
	}
	return json.Marshal(rows)
}

func encodeAddress(a domain.Address) ([]byte, error) {
	return json.Marshal(addressRow(a))
}

func scanBroadcast(row scanner) (*domain.Broadcast, error) {
	var (
		b                     domain.Broadcast
		id                    string
		itemsRaw, addrRaw     []byte
		lon, lat              float64
		status, payment       string
		subtotal, grand       int64
		acceptedAt, delivered *time.Time
	)
	err := row.Scan(
		&id, &b.CustomerID, &b.RetailerID, &itemsRaw,
		&lon, &lat, &addrRaw,
		&payment, &status, &subtotal, &grand,
		&b.CreatedAt, &b.ExpiryTime, &acceptedAt, &delivered,
		&b.EligibleRetailers, &b.AssignedAgentID,
	)
	if err != nil {
		return nil, err
	}

	if b.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse broadcast id %q: %w", id, err)
	}
	var items []itemRow
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, fmt.Errorf("decode items of %s: %w", id, err)
	}
	b.Items = make([]domain.Item, 0, len(items))
	for _, it := range items {
		b.Items = append(b.Items, domain.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: domain.Money(it.UnitPriceCents),
		})
	}
	var addr addressRow
	if err := json.Unmarshal(addrRaw, &addr); err != nil {
		return nil, fmt.Errorf("decode address of %s: %w", id, err)
	}
	b.DeliveryAddress = domain.Address(addr)

	b.Origin = orb.Point{lon, lat}
	b.PaymentMethod = domain.PaymentMethod(payment)
	b.Status = domain.Status(status)
	b.Subtotal = domain.Money(subtotal)
	b.GrandTotal = domain.Money(grand)
	b.CreatedAt = b.CreatedAt.UTC()
	b.ExpiryTime = b.ExpiryTime.UTC()
	if acceptedAt != nil {
		t := acceptedAt.UTC()
		b.AcceptedAt = &t
	}
	if delivered != nil {
		t := delivered.UTC()
		b.DeliveredAt = &t
	}
	if b.EligibleRetailers == nil {
		b.EligibleRetailers = []string{}
	}
	return &b, nil
}
