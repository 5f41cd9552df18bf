package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"thesisdesk/internal/model"
)

// ScheduleRepo handles MongoDB operations for defense schedules
type ScheduleRepo interface {
	Create(ctx context.Context, schedule *model.DefenseSchedule) (string, error)
	GetByID(ctx context.Context, id string) (*model.DefenseSchedule, error)
	List(ctx context.Context, status model.ScheduleStatus, groupID string) ([]*model.DefenseSchedule, error)
	Update(ctx context.Context, schedule *model.DefenseSchedule) error
}

type scheduleRepo struct {
	collection *mongo.Collection
}

// NewScheduleRepo creates a new schedule repository
func NewScheduleRepo(db *mongo.Database) ScheduleRepo {
	return &scheduleRepo{collection: db.Collection("schedules")}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.DefenseSchedule) (string, error) {
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()
	if schedule.Status == "" {
		schedule.Status = model.ScheduleStatusPlanned
	}

	result, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.DefenseSchedule, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var schedule model.DefenseSchedule
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&schedule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	schedule.ID = id
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context, status model.ScheduleStatus, groupID string) ([]*model.DefenseSchedule, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if groupID != "" {
		filter["groupId"] = groupID
	}

	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []*model.DefenseSchedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.DefenseSchedule) error {
	oid, err := primitive.ObjectIDFromHex(schedule.ID)
	if err != nil {
		return err
	}
	schedule.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, schedule)
	return err
}
