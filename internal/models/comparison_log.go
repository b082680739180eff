package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComparisonLog is the stored summary of one completed comparison. It keeps
// the derived figures only, never the individual records.
type ComparisonLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Product     string             `bson:"product" json:"product"`
	RequestedAt time.Time          `bson:"requested_at" json:"requested_at"`
	Count       int                `bson:"count" json:"count"`
	BestSource  string             `bson:"best_source,omitempty" json:"best_source,omitempty"`
	BestPrice   float64            `bson:"best_price,omitempty" json:"best_price,omitempty"`
	MinPrice    float64            `bson:"min_price,omitempty" json:"min_price,omitempty"`
	MaxPrice    float64            `bson:"max_price,omitempty" json:"max_price,omitempty"`
	Failed      []string           `bson:"failed,omitempty" json:"failed,omitempty"`
}

// NewComparisonLog summarizes a result for storage
func NewComparisonLog(res ComparisonResult, at time.Time) ComparisonLog {
	log := ComparisonLog{
		Product:     strings.TrimSpace(res.Product),
		RequestedAt: at,
		Count:       res.Count(),
		Failed:      append([]string(nil), res.Failed...),
	}
	if best, ok := res.Best(); ok {
		log.BestSource = best.Source
		log.BestPrice = best.Price
		log.MinPrice, _ = res.MinPrice()
		log.MaxPrice, _ = res.MaxPrice()
	}
	return log
}
