package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/itjobhub/importer/internal/model"
)

// MongoStore persists jobs, companies and seniorities to MongoDB.
// The unique index on jobs.link is the true source of truth for dedup.
type MongoStore struct {
	client      *mongo.Client
	jobs        *mongo.Collection
	companies   *mongo.Collection
	seniorities *mongo.Collection
}

// NewMongoStore connects to MongoDB, pings it, and ensures the uniqueness
// indexes exist. Index creation failures are logged, not fatal: the
// deployment may have created them out of band.
func NewMongoStore(ctx context.Context, uri, database string, logger *slog.Logger) (*MongoStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo store: uri is empty")
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:      client,
		jobs:        db.Collection("jobs"),
		companies:   db.Collection("companies"),
		seniorities: db.Collection("seniorities"),
	}

	indexes := []struct {
		coll *mongo.Collection
		keys bson.D
	}{
		{s.jobs, bson.D{{Key: "link", Value: 1}}},
		{s.companies, bson.D{{Key: "name", Value: 1}, {Key: "address", Value: 1}}},
		{s.seniorities, bson.D{{Key: "level", Value: 1}}},
	}
	for _, idx := range indexes {
		_, err := idx.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    idx.keys,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			logger.Warn("could not create index", "collection", idx.coll.Name(), "error", err)
		}
	}

	return s, nil
}

// HasJobWithLink reports whether a job with the given link exists.
func (s *MongoStore) HasJobWithLink(ctx context.Context, link string) (bool, error) {
	err := s.jobs.FindOne(ctx, bson.M{"link": link}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up job by link: %w", err)
	}
	return true, nil
}

// HasJobWithFingerprint reports whether a job with the given content
// fingerprint exists.
func (s *MongoStore) HasJobWithFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	err := s.jobs.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up job by fingerprint: %w", err)
	}
	return true, nil
}

// InsertJob inserts the job. A duplicate-key rejection from the unique link
// index maps to ErrDuplicate.
func (s *MongoStore) InsertJob(ctx context.Context, job *model.Job) (string, error) {
	job.CreatedAt = time.Now().UTC()
	res, err := s.jobs.InsertOne(ctx, job)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicate
	}
	if err != nil {
		return "", fmt.Errorf("inserting job: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", nil
	}
	return id.Hex(), nil
}

// UpsertCompany resolves or creates the company by (name, address) and
// returns its hex ID. Mutable fields (logo, geo) are refreshed on every
// upsert; defaults are set only on insert.
func (s *MongoStore) UpsertCompany(ctx context.Context, company model.Company) (string, error) {
	set := bson.M{"name": company.Name, "address": company.Address}
	if company.Logo != "" {
		set["logo_url"] = company.Logo
	}
	if company.Geo != nil {
		set["location_geo"] = company.Geo
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"created_at":    time.Now().UTC(),
			"trustScore":    80.0,
			"totalRatings":  0,
			"totalLikes":    0,
			"totalDislikes": 0,
		},
	}

	var doc struct {
		ID bson.ObjectID `bson:"_id"`
	}
	err := s.companies.FindOneAndUpdate(ctx,
		bson.M{"name": company.Name, "address": company.Address},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return "", fmt.Errorf("upserting company %q: %w", company.Name, err)
	}
	return doc.ID.Hex(), nil
}

// UpsertSeniority resolves or creates the seniority level and returns its
// hex ID.
func (s *MongoStore) UpsertSeniority(ctx context.Context, level string) (string, error) {
	var doc struct {
		ID bson.ObjectID `bson:"_id"`
	}
	err := s.seniorities.FindOneAndUpdate(ctx,
		bson.M{"level": level},
		bson.M{
			"$set":         bson.M{"level": level},
			"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return "", fmt.Errorf("upserting seniority %q: %w", level, err)
	}
	return doc.ID.Hex(), nil
}

// RecentJobs returns the most recently imported jobs, newest first.
func (s *MongoStore) RecentJobs(ctx context.Context, limit int) ([]model.Job, error) {
	cur, err := s.jobs.Find(ctx, bson.D{},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("listing recent jobs: %w", err)
	}
	var jobs []model.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("decoding recent jobs: %w", err)
	}
	return jobs, nil
}

// Jobs exposes the raw jobs collection for maintenance utilities.
func (s *MongoStore) Jobs() *mongo.Collection {
	return s.jobs
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
