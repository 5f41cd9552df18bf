package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"thesisdesk/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func insertID(ctx context.Context, coll *mongo.Collection, doc interface{}) string {
	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		log.Fatalf("Failed to insert into %s: %v", coll.Name(), err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		log.Fatalf("Unexpected inserted id in %s: %v", coll.Name(), result.InsertedID)
	}
	return oid.Hex()
}

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "thesisdesk"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	groupColl := db.Collection("groups")
	userColl := db.Collection("users")
	scheduleColl := db.Collection("schedules")
	now := time.Now()

	committeeID := insertID(ctx, groupColl, model.Group{
		Name:      "CS Defense Committee A",
		Kind:      "committee",
		CreatedAt: now,
	})
	cohortID := insertID(ctx, groupColl, model.Group{
		Name:      "MSc Cohort 2026",
		Kind:      "cohort",
		CreatedAt: now,
	})

	reviewerIDs := []string{
		insertID(ctx, userColl, model.User{
			Username:  "dr.okafor",
			FullName:  "Ada Okafor",
			Email:     "okafor@example.edu",
			Role:      model.RoleReviewer,
			GroupID:   committeeID,
			CreatedAt: now,
			UpdatedAt: now,
		}),
		insertID(ctx, userColl, model.User{
			Username:  "prof.lindqvist",
			FullName:  "Sven Lindqvist",
			Email:     "lindqvist@example.edu",
			Role:      model.RoleReviewer,
			GroupID:   committeeID,
			CreatedAt: now,
			UpdatedAt: now,
		}),
	}
	studentID := insertID(ctx, userColl, model.User{
		Username:  "m.tanaka",
		FullName:  "Mei Tanaka",
		Email:     "tanaka@example.edu",
		Role:      model.RoleStudent,
		GroupID:   cohortID,
		CreatedAt: now,
		UpdatedAt: now,
	})

	// Backfill group membership now that the member ids exist
	updateMembers := func(groupID string, memberIDs []string) {
		oid, err := primitive.ObjectIDFromHex(groupID)
		if err != nil {
			log.Fatalf("Bad group id %s: %v", groupID, err)
		}
		if _, err := groupColl.UpdateByID(ctx, oid, map[string]interface{}{
			"$set": map[string]interface{}{"memberIds": memberIDs},
		}); err != nil {
			log.Fatalf("Failed to update group %s: %v", groupID, err)
		}
	}
	updateMembers(committeeID, reviewerIDs)
	updateMembers(cohortID, []string{studentID})

	schedule := model.DefenseSchedule{
		StudentID:   studentID,
		GroupID:     committeeID,
		Title:       "Streaming Graph Partitioning for Low-Latency Analytics",
		Room:        "B-214",
		StartsAt:    now.Add(48 * time.Hour),
		EndsAt:      now.Add(49 * time.Hour),
		Status:      model.ScheduleStatusPlanned,
		ReviewerIDs: reviewerIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	scheduleID := insertID(ctx, scheduleColl, schedule)

	fmt.Printf("Seeded 2 groups, 3 users, schedule %s ('%s')\n", scheduleID, schedule.Title)
}
