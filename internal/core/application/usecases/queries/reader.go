// Package queries contains the read operations of the amendment engine.
// Every read is scoped to the calling company and reports the effective
// status, so a pending amendment past its expiration reads as expired even
// before the sweep persists it.
package queries

import (
	"context"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/ports"
)

// AmendmentReader is the read side of the amendment store.
type AmendmentReader interface {
	Get(ctx context.Context, id kernel.UUID) (*amendment.Amendment, error)
	GetByNumber(ctx context.Context, number amendment.Number) (*amendment.Amendment, error)
	List(ctx context.Context, filter ports.AmendmentFilter) (ports.AmendmentPage, error)
}

// AmendmentView is an amendment as seen at a point in time.
type AmendmentView struct {
	Amendment       *amendment.Amendment
	EffectiveStatus amendment.Status
	IsExpired       bool
}

func viewOf(a *amendment.Amendment, now time.Time) AmendmentView {
	return AmendmentView{
		Amendment:       a,
		EffectiveStatus: a.EffectiveStatus(now),
		IsExpired:       a.IsExpired(now),
	}
}
