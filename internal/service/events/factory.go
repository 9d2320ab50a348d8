package events

import (
	"context"

	"service-dispatch/internal/domain"
)

type actionFunc func(context.Context, DeliveryEvent) error

type actionFactory struct {
	byStatus map[domain.Status]actionFunc
}

func newActionFactory(onShipped, onDelivered actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[domain.Status]actionFunc{
			domain.StatusShipped:   onShipped,
			domain.StatusDelivered: onDelivered,
		},
	}
}

func (f *actionFactory) get(status domain.Status) (actionFunc, bool) {
	fn, ok := f.byStatus[status]
	return fn, ok
}
