package main

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoClient         *mongo.Client
	database            *mongo.Database
	projectsCollection  *mongo.Collection
	sceneSetsCollection *mongo.Collection
)

func initializeMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(getMongoURI()))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	mongoClient = client
	database = client.Database(getMongoDB())
	projectsCollection = database.Collection("projects")
	sceneSetsCollection = database.Collection("scene_sets")

	if err := createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func createIndexes() error {
	ctx := context.Background()

	_, err := projectsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = sceneSetsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func insertProject(project *Project) error {
	_, err := projectsCollection.InsertOne(context.Background(), project)
	return err
}

func getProjectByID(projectID string) (*Project, error) {
	var project Project
	err := projectsCollection.FindOne(context.Background(), bson.M{"_id": projectID}).Decode(&project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func updateProject(projectID string, updateData bson.M) error {
	updateData["updated_at"] = time.Now()
	_, err := projectsCollection.UpdateOne(
		context.Background(),
		bson.M{"_id": projectID},
		bson.M{"$set": updateData},
	)
	return err
}

func insertSceneSet(record *SceneSetRecord) error {
	_, err := sceneSetsCollection.InsertOne(context.Background(), record)
	return err
}

func getLatestSceneSet(projectID string) (*SceneSetRecord, error) {
	var record SceneSetRecord
	err := sceneSetsCollection.FindOne(
		context.Background(),
		bson.M{"project_id": projectID},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
