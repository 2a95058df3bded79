package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resortdesk/internal/domain/room"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection("rooms")}
}

func (r *RoomRepository) ByID(ctx context.Context, id room.RoomID) (*room.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, room.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*room.Room, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*room.Room
	for cur.Next(ctx) {
		var doc roomDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	return out, cur.Err()
}

func (r *RoomRepository) Save(ctx context.Context, rm *room.Room) error {
	doc := roomDocument{
		ID:       string(rm.ID),
		Name:     rm.Name,
		Capacity: rm.Capacity,
		Category: rm.Category,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type roomDocument struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Capacity int    `bson:"capacity"`
	Category string `bson:"category"`
}

func (d roomDocument) toEntity() *room.Room {
	return &room.Room{
		ID:       room.RoomID(d.ID),
		Name:     d.Name,
		Capacity: d.Capacity,
		Category: d.Category,
	}
}
