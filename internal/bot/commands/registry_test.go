package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	product string
	limit   int64
	reply   string
}

func (f *fakeService) ComparePrices(_ context.Context, product string) string {
	f.product = product
	return "compare:" + product
}

func (f *fakeService) AvailableWebsites() string { return "Available websites for price comparison:\n- amazon" }

func (f *fakeService) ShoppingRecommendation(_ context.Context, product string) string {
	f.product = product
	if f.reply != "" {
		return f.reply
	}
	return "recommend:" + product
}

func (f *fakeService) SourceStats() string { return "No comparisons have run yet." }

func (f *fakeService) PriceHistory(_ context.Context, product string, limit int64) string {
	f.product, f.limit = product, limit
	return "history:" + product
}

type sent struct {
	channel string
	content string
}

func newRegistry(svc PriceService) *Registry {
	r := NewRegistry("!", zap.NewNop())
	r.Register(NewPingCommand(func() time.Duration { return 42 * time.Millisecond }))
	r.Register(NewCompareCommand(svc, "!"))
	r.Register(NewRecommendCommand(svc, "!"))
	r.Register(NewWebsitesCommand(svc))
	r.Register(NewStatsCommand(svc))
	r.Register(NewHistoryCommand(svc, "!"))
	r.Register(NewHelpCommand(r))
	return r
}

func handle(r *Registry, content string) ([]sent, bool) {
	var out []sent
	ok := r.Handle(context.Background(), "chan-1", content, func(ch, c string) error {
		out = append(out, sent{ch, c})
		return nil
	})
	return out, ok
}

func TestRegistry_Parse(t *testing.T) {
	r := newRegistry(&fakeService{})

	cmd, args, ok := r.Parse("!compare  rtx   4070 ")
	require.True(t, ok)
	assert.Equal(t, "compare", cmd.Name())
	assert.Equal(t, []string{"rtx", "4070"}, args)

	_, _, ok = r.Parse("!COMPARE gpu")
	assert.True(t, ok)

	for _, content := range []string{"compare gpu", "!", "!unknown gpu", "hello !compare gpu"} {
		_, _, ok := r.Parse(content)
		assert.False(t, ok, content)
	}
}

func TestRegistry_Handle(t *testing.T) {
	svc := &fakeService{}
	r := newRegistry(svc)

	out, ok := handle(r, "!compare rtx 4070")
	require.True(t, ok)
	assert.Equal(t, []sent{{"chan-1", "compare:rtx 4070"}}, out)
	assert.Equal(t, "rtx 4070", svc.product)

	out, _ = handle(r, "!recommend ssd")
	assert.Equal(t, "recommend:ssd", out[0].content)

	out, _ = handle(r, "!websites")
	assert.Contains(t, out[0].content, "- amazon")

	out, _ = handle(r, "!stats")
	assert.Equal(t, "No comparisons have run yet.", out[0].content)

	out, _ = handle(r, "!history rtx 4070")
	assert.Equal(t, "history:rtx 4070", out[0].content)
	assert.Equal(t, int64(defaultHistoryLimit), svc.limit)

	out, _ = handle(r, "!ping")
	assert.Equal(t, "Pong! Latency: 42ms", out[0].content)

	out, ok = handle(r, "just chatting")
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestRegistry_Handle_Usage(t *testing.T) {
	svc := &fakeService{}
	r := newRegistry(svc)

	out, _ := handle(r, "!compare")
	assert.Equal(t, "Usage: !compare <product>", out[0].content)

	out, _ = handle(r, "!recommend")
	assert.Equal(t, "Usage: !recommend <product>", out[0].content)

	out, _ = handle(r, "!history")
	assert.Equal(t, "Usage: !history <product>", out[0].content)

	assert.Empty(t, svc.product)
}

func TestRegistry_Handle_SplitsLongReplies(t *testing.T) {
	svc := &fakeService{reply: strings.Repeat(strings.Repeat("z", 99)+"\n", 50)}
	r := newRegistry(svc)

	out, _ := handle(r, "!recommend gpu")

	require.Len(t, out, 3)
	for _, m := range out {
		assert.LessOrEqual(t, len(m.content), MaxMessageLength)
	}
}

func TestRegistry_Handle_SendError(t *testing.T) {
	svc := &fakeService{reply: strings.Repeat(strings.Repeat("z", 99)+"\n", 50)}
	r := newRegistry(svc)

	calls := 0
	ok := r.Handle(context.Background(), "chan-1", "!recommend gpu", func(string, string) error {
		calls++
		return errors.New("missing access")
	})

	assert.True(t, ok)
	assert.Equal(t, 1, calls)
}

func TestHelpCommand(t *testing.T) {
	r := newRegistry(&fakeService{})

	out, _ := handle(r, "!help")
	help := out[0].content

	assert.True(t, strings.HasPrefix(help, "Commands:\n!compare - "))
	for _, name := range []string{"compare", "help", "history", "ping", "recommend", "stats", "websites"} {
		assert.Contains(t, help, "!"+name+" - ")
	}
}
