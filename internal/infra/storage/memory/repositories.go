// Package memory provides in-memory repository implementations used by tests
// and the demo wiring mode.
package memory

import (
	"context"
	"sort"
	"sync"

	"resortdesk/internal/domain/expense"
	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
)

// ReservationRepository keeps reservations in a map guarded by a RWMutex.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[reservation.ReservationID]*reservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[reservation.ReservationID]*reservation.Reservation)}
}

func (r *ReservationRepository) ByID(_ context.Context, id reservation.ReservationID) (*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	clone := *res
	clone.Stays = append([]reservation.RoomStay(nil), res.Stays...)
	return &clone, nil
}

func (r *ReservationRepository) List(_ context.Context) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*reservation.Reservation, 0, len(r.items))
	for _, res := range r.items {
		clone := *res
		clone.Stays = append([]reservation.RoomStay(nil), res.Stays...)
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ReservationRepository) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, res := range all {
		if !res.Status.Terminal() {
			active = append(active, res)
		}
	}
	return active, nil
}

func (r *ReservationRepository) Insert(_ context.Context, res *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *res
	clone.Stays = append([]reservation.RoomStay(nil), res.Stays...)
	r.items[res.ID] = &clone
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[res.ID]; !ok {
		return reservation.ErrReservationNotFound
	}
	clone := *res
	clone.Stays = append([]reservation.RoomStay(nil), res.Stays...)
	r.items[res.ID] = &clone
	return nil
}

func (r *ReservationRepository) Delete(_ context.Context, id reservation.ReservationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return reservation.ErrReservationNotFound
	}
	delete(r.items, id)
	return nil
}

// RoomRepository is the in-memory room inventory.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[room.RoomID]*room.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[room.RoomID]*room.Room)}
}

func (r *RoomRepository) ByID(_ context.Context, id room.RoomID) (*room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.items[id]
	if !ok {
		return nil, room.ErrRoomNotFound
	}
	clone := *rm
	return &clone, nil
}

func (r *RoomRepository) List(_ context.Context) ([]*room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*room.Room, 0, len(r.items))
	for _, rm := range r.items {
		clone := *rm
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *RoomRepository) Save(_ context.Context, rm *room.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *rm
	r.items[rm.ID] = &clone
	return nil
}

// ExpenseRepository is the in-memory expense book.
type ExpenseRepository struct {
	mu    sync.RWMutex
	items map[expense.ExpenseID]*expense.Expense
}

func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{items: make(map[expense.ExpenseID]*expense.Expense)}
}

func (r *ExpenseRepository) List(_ context.Context) ([]*expense.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*expense.Expense, 0, len(r.items))
	for _, e := range r.items {
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *ExpenseRepository) Insert(_ context.Context, e *expense.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *e
	r.items[e.ID] = &clone
	return nil
}

func (r *ExpenseRepository) Delete(_ context.Context, id expense.ExpenseID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return expense.ErrExpenseNotFound
	}
	delete(r.items, id)
	return nil
}
