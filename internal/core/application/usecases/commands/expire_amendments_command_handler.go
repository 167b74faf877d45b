package commands

import (
	"context"
)

// ExpireAmendmentsCommandHandler is the periodic expiration sweep. Expiration
// is also enforced lazily on every read and guard, so the sweep only makes the
// persisted status catch up.
type ExpireAmendmentsCommandHandler struct {
	uowFactory UoWFactory
	deps       Dependencies
}

func NewExpireAmendmentsCommandHandler(uowFactory UoWFactory, deps Dependencies) ExpireAmendmentsCommandHandler {
	return ExpireAmendmentsCommandHandler{uowFactory: uowFactory, deps: deps}
}

// Handle returns the number of amendments marked expired.
func (h ExpireAmendmentsCommandHandler) Handle(ctx context.Context, command ExpireAmendmentsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.deps.Clock.Now()
	amendments := uow.AmendmentRepository()

	overdue, err := amendments.GetAllPendingExpiredAt(ctx, now, command.BatchSize())
	if err != nil {
		return 0, err
	}

	for _, a := range overdue {
		if err = a.Expire(now); err != nil {
			return 0, err
		}
		if err = amendments.Update(ctx, a); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(overdue), nil
}
