package sessions

import "context"

// NthSession resolves "the nth upcoming session" (1 = soonest) against the
// store. The order is total and deterministic: start time ascending, then
// creation id ascending for sessions starting at the same instant.
func (svc *Service) NthSession(ctx context.Context, n int) (*Session, error) {
	if n < 1 {
		return nil, ErrInvalidIndex
	}

	found, err := svc.store.FindFuture(ctx, svc.now(), n-1, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		if n == 1 {
			// Nothing scheduled at all, the common user-facing case.
			return nil, ErrNoSessionAvailable
		}
		return nil, ErrIndexOutOfRange
	}

	s := found[0]
	s.Index = n
	return &s, nil
}

// SessionByID bypasses ranking entirely and returns the session with the
// given stored id, even when it is not in the future set. Rank-based flows
// never hand out ids of past sessions, so only callers that kept an explicit
// id end up here for archival records.
func (svc *Service) SessionByID(ctx context.Context, id uint) (*Session, error) {
	return svc.store.FindByID(ctx, id)
}

// AllFutureSessions returns every upcoming session in rank order, each
// annotated with its 1-based rank. Two calls without an interleaved
// mutation yield the identical ordering and rank assignment.
func (svc *Service) AllFutureSessions(ctx context.Context) ([]Session, error) {
	found, err := svc.store.FindFuture(ctx, svc.now(), 0, 0)
	if err != nil {
		return nil, err
	}
	for i := range found {
		found[i].Index = i + 1
	}
	return found, nil
}
