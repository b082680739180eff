package fetcher

import (
	"time"

	"github.com/bradykim7/pricecompare/internal/models"
)

// Reason classifies why a source produced no record
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonTimeout      Reason = "timeout"
	ReasonNetwork      Reason = "network"
	ReasonStatus       Reason = "status"
	ReasonRead         Reason = "read"
	ReasonTooLarge     Reason = "too_large"
	ReasonParse        Reason = "parse"
	ReasonMissingPrice Reason = "missing_price"
	ReasonMissingName  Reason = "missing_name"
	ReasonBadPrice     Reason = "bad_price"
	ReasonCanceled     Reason = "canceled"
)

// Outcome is the result of querying one source: a record, or a reason for
// having none.
type Outcome struct {
	Source   string
	URL      string
	Record   *models.PriceRecord
	Reason   Reason
	Status   int
	Err      error
	Duration time.Duration
}

// OK reports whether the source produced a record
func (o Outcome) OK() bool {
	return o.Record != nil
}
