// Package driver selects a repository.WorkoutRepository implementation from configuration.
package driver

import (
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/repository/file"
	"alcyxob/workout-tracker/internal/repository/mongo"
	"alcyxob/workout-tracker/internal/repository/objectstore"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"fmt"
)

// Open builds the repository named by cfg.Storage.Driver:
//
//	file:  JSON file at storage.path (default data/workouts.json)
//	mongo: one document in database.name/database.collection
//	s3:    object s3.object_key in s3.bucket_name
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (repository.WorkoutRepository, error) {
	driver := cfg.Storage.Driver
	if driver == "" {
		driver = config.DriverFile
	}
	log = log.WithComponent("repository").WithFields("driver", driver)

	switch driver {
	case config.DriverFile:
		repo, err := file.NewFileWorkoutRepository(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open workouts file: %w", err)
		}
		log.Infow("Using JSON file storage", "path", cfg.Storage.Path)
		return repo, nil
	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		log.Infow("Using MongoDB storage", "database", cfg.Database.Name, "collection", cfg.Database.Collection)
		return mongo.NewMongoWorkoutRepository(client.Database(cfg.Database.Name), cfg.Database.Collection), nil
	case config.DriverS3:
		objects, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			return nil, fmt.Errorf("initialize S3 storage: %w", err)
		}
		return objectstore.NewObjectWorkoutRepository(objects, cfg.S3.ObjectKey), nil
	default:
		return nil, fmt.Errorf("%w %q", repository.ErrUnknownDriver, driver)
	}
}
