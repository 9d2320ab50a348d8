package handlers

import (
	"github.com/paulmach/orb"

	"service-dispatch/internal/domain"
)

func (r createBroadcastRequest) toInput(customerID string) domain.CreateInput {
	lines := make([]domain.OrderLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, domain.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return domain.CreateInput{
		CustomerID: customerID,
		Lines:      lines,
		DeliveryAddress: domain.Address{
			Street:        r.DeliveryAddress.Street,
			City:          r.DeliveryAddress.City,
			State:         r.DeliveryAddress.State,
			PostalCode:    r.DeliveryAddress.PostalCode,
			ContactNumber: r.DeliveryAddress.ContactNumber,
			Landmark:      r.DeliveryAddress.Landmark,
		},
		Origin:        orb.Point{r.Coordinates.Lng, r.Coordinates.Lat},
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}
}

func pointToDTO(p orb.Point) coordinatesDTO {
	return coordinatesDTO{Lng: p.Lon(), Lat: p.Lat()}
}

// modelToResponse omits the eligible-retailer snapshot, which is internal.
func modelToResponse(b domain.Broadcast) broadcastDTO {
	items := make([]itemDTO, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, itemDTO{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: int64(it.UnitPrice)})
	}
	return broadcastDTO{
		ID:         b.ID.String(),
		CustomerID: b.CustomerID,
		RetailerID: b.RetailerID,
		Status:     string(b.Status),
		Items:      items,
		DeliveryAddress: addressDTO{
			Street:        b.DeliveryAddress.Street,
			City:          b.DeliveryAddress.City,
			State:         b.DeliveryAddress.State,
			PostalCode:    b.DeliveryAddress.PostalCode,
			ContactNumber: b.DeliveryAddress.ContactNumber,
			Landmark:      b.DeliveryAddress.Landmark,
		},
		Coordinates:     pointToDTO(b.Origin),
		PaymentMethod:   string(b.PaymentMethod),
		Subtotal:        int64(b.Subtotal),
		GrandTotal:      int64(b.GrandTotal),
		GrandTotalText:  b.GrandTotal.String(),
		CreatedAt:       b.CreatedAt,
		ExpiryTime:      b.ExpiryTime,
		AcceptedAt:      b.AcceptedAt,
		DeliveredAt:     b.DeliveredAt,
		AssignedAgentID: b.AssignedAgentID,
	}
}

func modelsToResponse(list []domain.Broadcast) []broadcastDTO {
	out := make([]broadcastDTO, 0, len(list))
	for _, b := range list {
		out = append(out, modelToResponse(b))
	}
	return out
}

func acceptToResponse(res domain.AcceptResult) acceptResponse {
	out := acceptResponse{Broadcast: modelToResponse(res.Broadcast)}
	if a := res.Agent; a != nil {
		out.Agent = &agentDTO{
			ID:         a.ID,
			RetailerID: a.RetailerID,
			Location:   pointToDTO(a.Location),
			Rating:     a.Rating,
		}
	}
	return out
}
