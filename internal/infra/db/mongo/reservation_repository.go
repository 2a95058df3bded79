package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
)

// ReservationRepository persists reservations with room stays embedded in the
// parent document, so a reservation and its stays commit and delete as one
// write.
type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("reservations")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id reservation.ReservationID) (*reservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) List(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReservationRepository) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	filter := bson.M{"status": bson.M{"$nin": bson.A{
		string(reservation.StatusCheckedOut),
		string(reservation.StatusCancelled),
	}}}
	return r.find(ctx, filter)
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]*reservation.Reservation, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*reservation.Reservation
	for cur.Next(ctx) {
		var doc reservationDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.col.InsertOne(ctx, newReservationDocument(res))
	return err
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	doc := newReservationDocument(res)
	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id reservation.ReservationID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

type reservationDocument struct {
	ID            string             `bson:"_id"`
	BookingNumber string             `bson:"booking_number"`
	GuestName     string             `bson:"guest_name"`
	GuestPhone    string             `bson:"guest_phone"`
	GuestEmail    string             `bson:"guest_email,omitempty"`
	Adults        int                `bson:"adults"`
	CheckIn       time.Time          `bson:"check_in"`
	CheckOut      time.Time          `bson:"check_out"`
	CheckInTime   string             `bson:"check_in_time,omitempty"`
	CheckOutTime  string             `bson:"check_out_time,omitempty"`
	RoomID        *string            `bson:"room_id"`
	TotalRooms    int                `bson:"total_rooms"`
	Stays         []roomStayDocument `bson:"booking_rooms,omitempty"`
	Price         float64            `bson:"price"`
	AdvancePaid   float64            `bson:"advance_paid"`
	VATApplicable bool               `bson:"vat_applicable"`
	VATAmount     float64            `bson:"vat_amount"`
	Payable       float64            `bson:"checkout_payable"`
	Revenue       float64            `bson:"revenue"`
	Pending       float64            `bson:"pending_amount"`
	Refund        float64            `bson:"refund_amount"`
	ExtraIncome   float64            `bson:"extra_income,omitempty"`
	Discount      float64            `bson:"discount,omitempty"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type roomStayDocument struct {
	RoomID        string    `bson:"room_id"`
	CheckInDate   time.Time `bson:"check_in_date"`
	CheckOutDate  time.Time `bson:"check_out_date"`
	PricePerNight float64   `bson:"price_per_night"`
	Nights        int       `bson:"nights"`
	LineTotal     float64   `bson:"line_total"`
	VATAmount     float64   `bson:"vat_amount"`
}

func newReservationDocument(res *reservation.Reservation) reservationDocument {
	doc := reservationDocument{
		ID:            string(res.ID),
		BookingNumber: res.BookingNumber,
		GuestName:     res.GuestName,
		GuestPhone:    res.GuestPhone,
		GuestEmail:    res.GuestEmail,
		Adults:        res.Adults,
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		CheckInTime:   res.CheckInTime,
		CheckOutTime:  res.CheckOutTime,
		Price:         res.Price,
		AdvancePaid:   res.AdvancePaid,
		VATApplicable: res.VATApplicable,
		VATAmount:     res.VATAmount,
		Payable:       res.CheckoutPayable,
		Revenue:       res.Revenue,
		Pending:       res.PendingAmount,
		Refund:        res.RefundAmount,
		ExtraIncome:   res.ExtraIncome,
		Discount:      res.Discount,
		Status:        string(res.Status),
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
	if res.MultiRoom() {
		doc.TotalRooms = len(res.Stays)
		doc.Stays = make([]roomStayDocument, 0, len(res.Stays))
		for _, stay := range res.Stays {
			doc.Stays = append(doc.Stays, roomStayDocument{
				RoomID:        string(stay.RoomID),
				CheckInDate:   stay.CheckIn,
				CheckOutDate:  stay.CheckOut,
				PricePerNight: stay.PricePerNight,
				Nights:        stay.Nights,
				LineTotal:     stay.LineTotal,
				VATAmount:     stay.VATAmount,
			})
		}
	} else {
		id := string(res.RoomID)
		doc.RoomID = &id
	}
	return doc
}

func (d reservationDocument) toAggregate() *reservation.Reservation {
	res := &reservation.Reservation{
		ID:              reservation.ReservationID(d.ID),
		BookingNumber:   d.BookingNumber,
		GuestName:       d.GuestName,
		GuestPhone:      d.GuestPhone,
		GuestEmail:      d.GuestEmail,
		Adults:          d.Adults,
		CheckIn:         d.CheckIn.UTC(),
		CheckOut:        d.CheckOut.UTC(),
		CheckInTime:     d.CheckInTime,
		CheckOutTime:    d.CheckOutTime,
		Price:           d.Price,
		AdvancePaid:     d.AdvancePaid,
		VATApplicable:   d.VATApplicable,
		VATAmount:       d.VATAmount,
		CheckoutPayable: d.Payable,
		Revenue:         d.Revenue,
		PendingAmount:   d.Pending,
		RefundAmount:    d.Refund,
		ExtraIncome:     d.ExtraIncome,
		Discount:        d.Discount,
		Status:          reservation.Status(d.Status),
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
	if d.RoomID != nil {
		res.RoomID = room.RoomID(*d.RoomID)
	}
	for _, stay := range d.Stays {
		res.Stays = append(res.Stays, reservation.RoomStay{
			RoomID:        room.RoomID(stay.RoomID),
			CheckIn:       stay.CheckInDate.UTC(),
			CheckOut:      stay.CheckOutDate.UTC(),
			PricePerNight: stay.PricePerNight,
			Nights:        stay.Nights,
			LineTotal:     stay.LineTotal,
			VATAmount:     stay.VATAmount,
		})
	}
	return res
}
