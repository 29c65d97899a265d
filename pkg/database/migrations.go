package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			if err := migration.Up(m.db); err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			if err := m.updateVersion(migration.Version); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc struct {
		Version int `bson:"version"`
	}
	err := m.db.Collection("schema_migrations").FindOne(ctx, bson.M{"_id": "current"}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := m.db.Collection("schema_migrations").UpdateOne(
		ctx,
		bson.M{"_id": "current"},
		bson.M{"$set": bson.M{"version": version, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "booking indexes: unique sparse bill_id, customer/vehicle/status lookups",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				indexes := []mongo.IndexModel{
					{
						// Sparse: bill_id is absent until pickup; once set it
						// is globally unique. The bill allocator relies on
						// this constraint to detect collisions.
						Keys:    bson.D{{Key: "bill_id", Value: 1}},
						Options: options.Index().SetUnique(true).SetSparse(true),
					},
					{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
					{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "status", Value: 1}}},
					{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
				}

				_, err := db.Collection("bookings").Indexes().CreateMany(ctx, indexes)
				return err
			},
		},
		{
			Version:     2,
			Description: "vehicle and pricing package indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("vehicles").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{
						Keys:    bson.D{{Key: "license_plate", Value: 1}},
						Options: options.Index().SetUnique(true),
					},
					{Keys: bson.D{{Key: "availability_status", Value: 1}}},
				})
				if err != nil {
					return err
				}

				_, err = db.Collection("pricing_packages").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys: bson.D{
						{Key: "vehicle_type", Value: 1},
						{Key: "is_active", Value: 1},
						{Key: "min_displacement_cc", Value: 1},
					},
				})
				return err
			},
		},
	}
}
