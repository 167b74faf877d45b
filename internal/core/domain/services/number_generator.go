package services

import (
	"context"

	"amendments/internal/core/domain/model/amendment"
)

// AmendmentCounter counts stored amendments whose number starts with prefix.
type AmendmentCounter interface {
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
}

// NumberGenerator derives the next amendment number of an order.
//
// The count-then-format sequence is only race free when counter reads inside
// the transaction that also inserts the amendment, with the order row locked
// (see ports.OrderRepository.GetForUpdate). The unique index on the number
// column turns any remaining race into a concurrency conflict.
type NumberGenerator struct{}

func NewNumberGenerator() NumberGenerator {
	return NumberGenerator{}
}

func (g NumberGenerator) Generate(ctx context.Context, counter AmendmentCounter, orderNumber string) (amendment.Number, error) {
	count, err := counter.CountByNumberPrefix(ctx, amendment.NumberPrefix(orderNumber))
	if err != nil {
		return amendment.Number{}, err
	}
	return amendment.NewNumber(orderNumber, int(count)+1)
}
