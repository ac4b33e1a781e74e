package provider

import (
	"context"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
)

var _ application.PriceProvider = (*Fake)(nil)

type Fake struct {
	points map[domain.Asset]application.PricePoint
}

func NewFake(points map[domain.Asset]application.PricePoint) *Fake {
	return &Fake{points: points}
}

func (f *Fake) Fetch(_ context.Context, assets []domain.Asset) (map[domain.Asset]application.PricePoint, error) {
	out := make(map[domain.Asset]application.PricePoint, len(assets))
	for _, a := range assets {
		if pt, ok := f.points[a]; ok {
			out[a] = pt
		}
	}
	return out, nil
}
