package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resortdesk/internal/domain/expense"
)

type ExpenseRepository struct {
	col *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{col: db.Collection("expenses")}
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*expense.Expense, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*expense.Expense
	for cur.Next(ctx) {
		var doc expenseDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	return out, cur.Err()
}

func (r *ExpenseRepository) Insert(ctx context.Context, e *expense.Expense) error {
	_, err := r.col.InsertOne(ctx, expenseDocument{
		ID:        string(e.ID),
		Date:      e.Date,
		Category:  e.Category,
		Note:      e.Note,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	})
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, id expense.ExpenseID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

type expenseDocument struct {
	ID        string    `bson:"_id"`
	Date      time.Time `bson:"date"`
	Category  string    `bson:"category"`
	Note      string    `bson:"note,omitempty"`
	Amount    float64   `bson:"amount"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d expenseDocument) toEntity() *expense.Expense {
	return &expense.Expense{
		ID:        expense.ExpenseID(d.ID),
		Date:      d.Date.UTC(),
		Category:  d.Category,
		Note:      d.Note,
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
