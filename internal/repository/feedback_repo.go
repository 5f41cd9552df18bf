package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"thesisdesk/internal/model"
)

// FeedbackRecord is the local audit copy of a finalized feedback item,
// written when a submit succeeds. The form service stays authoritative;
// this collection only backs list pages and score reports.
type FeedbackRecord struct {
	ItemID      string             `bson:"itemId"`
	ScheduleID  string             `bson:"scheduleId"`
	ReviewerID  string             `bson:"reviewerId"`
	StudentID   string             `bson:"studentId"`
	Answers     model.AnswerMap    `bson:"answers"`
	Score       model.ScoreSummary `bson:"score"`
	SubmittedAt time.Time          `bson:"submittedAt"`
}

// FeedbackRepo handles MongoDB operations for submitted feedback records
type FeedbackRepo interface {
	Upsert(ctx context.Context, record *FeedbackRecord) error
	GetByItemID(ctx context.Context, itemID string) (*FeedbackRecord, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]*FeedbackRecord, error)
	CountBySchedule(ctx context.Context, scheduleID string) (int64, error)
}

type feedbackRepo struct {
	collection *mongo.Collection
}

// NewFeedbackRepo creates a new feedback record repository
func NewFeedbackRepo(db *mongo.Database) FeedbackRepo {
	return &feedbackRepo{collection: db.Collection("feedback_records")}
}

func (r *feedbackRepo) Upsert(ctx context.Context, record *FeedbackRecord) error {
	filter := bson.M{"itemId": record.ItemID}
	update := bson.M{"$set": record}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *feedbackRepo) GetByItemID(ctx context.Context, itemID string) (*FeedbackRecord, error) {
	var record FeedbackRecord
	err := r.collection.FindOne(ctx, bson.M{"itemId": itemID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *feedbackRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]*FeedbackRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"scheduleId": scheduleID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*FeedbackRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *feedbackRepo) CountBySchedule(ctx context.Context, scheduleID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"scheduleId": scheduleID})
}
