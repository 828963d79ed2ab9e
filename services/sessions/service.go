package sessions

import (
	"context"
	"time"
)

/*
 * 'Service' implements the session lifecycle: create, update, join, leave,
 * delete and bring-equipment. It owns the aggregate only for the duration
 * of one request; between requests the store is the source of truth. Every
 * mutation re-persists the whole affected sub-document (participants list
 * or host) through a version-matched conditional write.
 */
type Service struct {
	store SessionStore
	now   func() time.Time
}

// NewService wires the lifecycle service to a store. The clock can be
// overridden for tests via NewServiceWithClock.
func NewService(store SessionStore) *Service {
	return NewServiceWithClock(store, time.Now)
}

func NewServiceWithClock(store SessionStore, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// Now exposes the service clock, used by date derivation at the transport.
func (svc *Service) Now() time.Time {
	return svc.now()
}

// Create persists a new session hosted by the given user. The host's
// equipment counters start at zero; the participants list starts empty.
// The returned aggregate is re-read from the store so it carries the
// assigned id.
func (svc *Service) Create(ctx context.Context, host User, start, end time.Time, places *int, address, comment *string) (*Session, error) {
	if places != nil && *places < 0 {
		return nil, ErrInvalidCapacity
	}

	host.Consoles, host.Screens, host.Adapters = 0, 0, 0
	s := &Session{
		DateStart:    start,
		DateEnd:      end,
		Places:       places,
		Address:      address,
		Comment:      comment,
		Host:         host,
		Participants: []User{},
	}

	id, err := svc.store.Insert(ctx, s)
	if err != nil {
		return nil, err
	}
	return svc.store.FindByID(ctx, id)
}

// Update applies the provided fields to the session, keeping omitted ones
// untouched. Only the host may update. Lowering places below the current
// number of participants is rejected so the capacity invariant keeps
// holding for everyone already in.
func (svc *Service) Update(ctx context.Context, s *Session, actor User, places *int, address, comment *string) (*Session, error) {
	if !s.IsHost(actor) {
		return nil, ErrUserIsNotHost
	}
	if places != nil {
		if *places < 0 || *places < len(s.Participants) {
			return nil, ErrInvalidCapacity
		}
	}

	if err := svc.store.UpdateDetails(ctx, s.ID, s.Version, places, address, comment); err != nil {
		return nil, err
	}
	return svc.reload(ctx, s)
}

// Join adds the user to the session's participants, preserving arrival
// order, and persists the full list.
func (svc *Service) Join(ctx context.Context, s *Session, user User) (*Session, error) {
	if err := s.AddParticipant(user); err != nil {
		return nil, err
	}
	if err := svc.store.UpdateParticipants(ctx, s.ID, s.Version, s.Participants); err != nil {
		return nil, err
	}
	return svc.reload(ctx, s)
}

// Leave removes the user from the participants and persists the full list.
func (svc *Service) Leave(ctx context.Context, s *Session, user User) (*Session, error) {
	if err := s.RemoveParticipant(user); err != nil {
		return nil, err
	}
	if err := svc.store.UpdateParticipants(ctx, s.ID, s.Version, s.Participants); err != nil {
		return nil, err
	}
	return svc.reload(ctx, s)
}

// Delete removes the session permanently. Only the host may delete.
func (svc *Service) Delete(ctx context.Context, s *Session, actor User) error {
	if !s.IsHost(actor) {
		return ErrUserIsNotHost
	}
	return svc.store.Delete(ctx, s.ID)
}

// BringEquipment increments the actor's counter for the given kind and
// persists only the mutated sub-document: the host document when the actor
// hosts, the participants list otherwise.
func (svc *Service) BringEquipment(ctx context.Context, s *Session, actor User, kind Equipment) (*Session, error) {
	member, isHost, err := s.FindMember(actor)
	if err != nil {
		return nil, err
	}
	if err := member.AddEquipment(kind); err != nil {
		return nil, err
	}

	if isHost {
		err = svc.store.UpdateHost(ctx, s.ID, s.Version, s.Host)
	} else {
		err = svc.store.UpdateParticipants(ctx, s.ID, s.Version, s.Participants)
	}
	if err != nil {
		return nil, err
	}
	return svc.reload(ctx, s)
}

// reload re-reads the aggregate after a write, keeping the rank the caller
// resolved it at.
func (svc *Service) reload(ctx context.Context, s *Session) (*Session, error) {
	fresh, err := svc.store.FindByID(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	fresh.Index = s.Index
	return fresh, nil
}
