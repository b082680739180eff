package storage

import (
	"context"

	"github.com/bradykim7/pricecompare/internal/models"
	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const comparisonsCollection = "comparisons"

// HistoryRepository stores comparison summaries
type HistoryRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

// NewHistoryRepository creates a repository over the comparisons collection
func NewHistoryRepository(db *MongoDB, log *zap.Logger) *HistoryRepository {
	return &HistoryRepository{
		coll: db.Collection(comparisonsCollection),
		log:  log.Named("history-repository"),
	}
}

// EnsureIndexes creates the product/time index used by Recent
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "product", Value: 1}, {Key: "requested_at", Value: -1}},
	})
	if err != nil {
		return eris.Wrap(err, "create comparisons index")
	}
	return nil
}

// Save appends one comparison summary
func (r *HistoryRepository) Save(ctx context.Context, entry models.ComparisonLog) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return eris.Wrapf(err, "insert comparison for %q", entry.Product)
	}
	r.log.Debug("Comparison recorded",
		zap.String("product", entry.Product),
		zap.Int("count", entry.Count))
	return nil
}

// Recent returns up to limit summaries for product, newest first
func (r *HistoryRepository) Recent(ctx context.Context, product string, limit int64) ([]models.ComparisonLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "requested_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"product": product}, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "find comparisons for %q", product)
	}
	defer cursor.Close(ctx)

	var entries []models.ComparisonLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, eris.Wrap(err, "decode comparisons")
	}
	return entries, nil
}
