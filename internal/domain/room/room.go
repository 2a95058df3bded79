package room

import (
	"context"
	"errors"
)

var ErrRoomNotFound = errors.New("room: not found")

type RoomID string

// Room is a static inventory unit. The booking core only reads rooms; nothing
// in this service mutates them outside fixture seeding.
type Room struct {
	ID       RoomID
	Name     string
	Capacity int
	Category string
}

type Repository interface {
	ByID(ctx context.Context, id RoomID) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
}
