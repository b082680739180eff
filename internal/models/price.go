package models

import (
	"time"
)

// PriceRecord is one normalized price observation for a single source
type PriceRecord struct {
	Source      string    `json:"website" bson:"source"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	URL         string    `json:"url" bson:"url"`
	RetrievedAt time.Time `json:"timestamp" bson:"retrieved_at"`
}

// Timestamp returns the retrieval time in ISO-8601
func (r PriceRecord) Timestamp() string {
	return r.RetrievedAt.Format(time.RFC3339Nano)
}

// ComparisonResult is the ranked set of records for one product query.
// Records are sorted ascending by price; equal prices keep registry order.
type ComparisonResult struct {
	Product string
	Records []PriceRecord
	// Failed lists the sources that produced no record, in registry order
	Failed []string
}

// Empty reports whether no source produced a record
func (c ComparisonResult) Empty() bool {
	return len(c.Records) == 0
}

// Count returns the number of stores compared
func (c ComparisonResult) Count() int {
	return len(c.Records)
}

// Best returns the cheapest record
func (c ComparisonResult) Best() (PriceRecord, bool) {
	if c.Empty() {
		return PriceRecord{}, false
	}
	return c.Records[0], true
}

// MinPrice returns the lowest price; ok is false for an empty result
func (c ComparisonResult) MinPrice() (float64, bool) {
	if c.Empty() {
		return 0, false
	}
	return c.Records[0].Price, true
}

// MaxPrice returns the highest price; ok is false for an empty result
func (c ComparisonResult) MaxPrice() (float64, bool) {
	if c.Empty() {
		return 0, false
	}
	return c.Records[len(c.Records)-1].Price, true
}
