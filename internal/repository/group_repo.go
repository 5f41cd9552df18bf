package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"thesisdesk/internal/model"
)

// GroupRepo handles MongoDB operations for committees and cohorts
type GroupRepo interface {
	Create(ctx context.Context, group *model.Group) (string, error)
	GetByID(ctx context.Context, id string) (*model.Group, error)
	List(ctx context.Context, kind string) ([]*model.Group, error)
	Count(ctx context.Context, kind string) (int64, error)
}

type groupRepo struct {
	collection *mongo.Collection
}

// NewGroupRepo creates a new group repository
func NewGroupRepo(db *mongo.Database) GroupRepo {
	return &groupRepo{collection: db.Collection("groups")}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) (string, error) {
	group.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, group)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var group model.Group
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	group.ID = id
	return &group, nil
}

func (r *groupRepo) List(ctx context.Context, kind string) ([]*model.Group, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []*model.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepo) Count(ctx context.Context, kind string) (int64, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}
	return r.collection.CountDocuments(ctx, filter)
}
