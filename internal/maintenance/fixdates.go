// Package maintenance holds one-off repair routines run against the
// document store outside the regular import pipeline.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/itjobhub/importer/internal/normalize"
)

// FixDatesResult summarizes one repair pass.
type FixDatesResult struct {
	Scanned    int
	Fixed      int
	Unparsable int
}

// FixDates rewrites published_at values that were stored as strings by
// older importer versions into proper date values. Documents whose string
// matches no known format are left untouched and reported. The pass is
// idempotent: already-converted documents no longer match the query.
func FixDates(ctx context.Context, jobs *mongo.Collection, logger *slog.Logger) (FixDatesResult, error) {
	var result FixDatesResult

	cur, err := jobs.Find(ctx, bson.M{"published_at": bson.M{"$type": "string"}})
	if err != nil {
		return result, fmt.Errorf("query string dates: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID          bson.ObjectID `bson:"_id"`
			PublishedAt string        `bson:"published_at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return result, fmt.Errorf("decode job: %w", err)
		}
		result.Scanned++

		parsed, ok := normalize.ParseDate(doc.PublishedAt)
		if !ok {
			result.Unparsable++
			logger.Warn("unparsable published_at, leaving as is",
				"id", doc.ID.Hex(),
				"value", doc.PublishedAt,
			)
			continue
		}

		_, err := jobs.UpdateOne(ctx,
			bson.M{"_id": doc.ID},
			bson.M{"$set": bson.M{"published_at": parsed}},
		)
		if err != nil {
			return result, fmt.Errorf("update job %s: %w", doc.ID.Hex(), err)
		}
		result.Fixed++
	}
	if err := cur.Err(); err != nil {
		return result, fmt.Errorf("iterate jobs: %w", err)
	}

	logger.Info("date repair finished",
		"scanned", result.Scanned,
		"fixed", result.Fixed,
		"unparsable", result.Unparsable,
	)
	return result, nil
}
