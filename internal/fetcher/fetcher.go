// Package fetcher queries a single retailer and turns its listing page into a
// price record.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bradykim7/pricecompare/internal/extract"
	"github.com/bradykim7/pricecompare/internal/models"
	"github.com/bradykim7/pricecompare/internal/sources"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 10 * time.Second
	defaultMaxBody = 8 << 20
)

// ErrNoPrice is returned by NormalizePrice for text without a usable number
var ErrNoPrice = errors.New("no price in text")

// Options configures a Fetcher. Zero values fall back to the defaults used
// against live retailers.
type Options struct {
	Timeout      time.Duration
	Delay        DelayPolicy
	// Limiter, when set, is shared by every fetch as a global request cap
	Limiter      *rate.Limiter
	// MaxBodyBytes caps a listing page; larger pages are rejected, not truncated
	MaxBodyBytes int64
	Now          func() time.Time
}

// Fetcher issues one request per source and extracts a price record
type Fetcher struct {
	log     *zap.Logger
	timeout time.Duration
	delay   DelayPolicy
	limiter *rate.Limiter
	maxBody int64
	now     func() time.Time
}

// New creates a fetcher
func New(log *zap.Logger, opts Options) *Fetcher {
	f := &Fetcher{
		log:     log.Named("fetcher"),
		timeout: opts.Timeout,
		delay:   opts.Delay,
		limiter: opts.Limiter,
		maxBody: opts.MaxBodyBytes,
		now:     opts.Now,
	}
	if f.maxBody <= 0 {
		f.maxBody = defaultMaxBody
	}
	if f.timeout <= 0 {
		f.timeout = defaultTimeout
	}
	if f.delay == nil {
		f.delay = DefaultDelay()
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// Fetch queries src for product. It never fails outward: every problem is
// folded into the outcome's Reason and logged.
func (f *Fetcher) Fetch(ctx context.Context, client *http.Client, src sources.SourceConfig, product string) Outcome {
	start := time.Now()
	out := f.fetch(ctx, client, src, product)
	out.Duration = time.Since(start)

	if out.OK() {
		f.log.Debug("Fetched price",
			zap.String("source", src.ID),
			zap.Float64("price", out.Record.Price),
			zap.Duration("duration", out.Duration))
		return out
	}

	fields := []zap.Field{
		zap.String("source", src.ID),
		zap.String("reason", string(out.Reason)),
		zap.String("url", out.URL),
		zap.Duration("duration", out.Duration),
	}
	if out.Status != 0 {
		fields = append(fields, zap.Int("status", out.Status))
	}
	if out.Err != nil {
		fields = append(fields, zap.Error(out.Err))
	}
	f.log.Warn("No price from source", fields...)
	return out
}

func (f *Fetcher) fetch(ctx context.Context, client *http.Client, src sources.SourceConfig, product string) Outcome {
	out := Outcome{Source: src.ID, URL: src.QueryURL(product)}

	if err := sleep(ctx, f.delay.Delay(src.ID)); err != nil {
		return fail(out, ReasonCanceled, err)
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return fail(out, ReasonCanceled, err)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, out.URL, nil)
	if err != nil {
		return fail(out, ReasonNetwork, eris.Wrap(err, "build request"))
	}
	for key, value := range src.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fail(out, classify(ctx, reqCtx, err, ReasonNetwork), err)
	}
	defer resp.Body.Close()

	out.Status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		return fail(out, ReasonStatus, eris.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return fail(out, classify(ctx, reqCtx, err, ReasonRead), err)
	}
	if int64(len(body)) > f.maxBody {
		return fail(out, ReasonTooLarge, eris.Errorf("page exceeds %d bytes", f.maxBody))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fail(out, ReasonParse, eris.Wrap(err, "parse html"))
	}

	priceText, ok := extract.Text(doc.Selection, src.PriceRule)
	if !ok {
		return fail(out, ReasonMissingPrice, eris.Errorf("no element for %s", src.PriceRule))
	}
	nameText, ok := extract.Text(doc.Selection, src.NameRule)
	if !ok {
		return fail(out, ReasonMissingName, eris.Errorf("no element for %s", src.NameRule))
	}

	price, err := NormalizePrice(priceText)
	if err != nil {
		return fail(out, ReasonBadPrice, eris.Wrapf(err, "price text %q", priceText))
	}

	out.Record = &models.PriceRecord{
		Source:      src.ID,
		Name:        nameText,
		Price:       price,
		URL:         out.URL,
		RetrievedAt: f.now(),
	}
	return out
}

// NormalizePrice keeps only digits and decimal points, then parses the rest
func NormalizePrice(text string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return 0, ErrNoPrice
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, eris.Wrapf(ErrNoPrice, "parse %q", cleaned)
	}
	return price, nil
}

func fail(out Outcome, reason Reason, err error) Outcome {
	out.Reason = reason
	out.Err = err
	return out
}

// classify separates timeouts and caller cancellation from other I/O errors
func classify(parent, reqCtx context.Context, err error, fallback Reason) Reason {
	if parent.Err() != nil {
		return ReasonCanceled
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return fallback
}
