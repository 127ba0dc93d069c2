package dataflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piquette/finance-go/datetime"
)

func TestChartParamsCarryContext(t *testing.T) {
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -7)

	ctx, cancel := context.WithCancel(context.Background())
	p := chartParams(ctx, "BTC-USD", start, end)

	if p.Symbol != "BTC-USD" || p.Interval != datetime.OneDay {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.Context == nil {
		t.Fatal("chart params have no context")
	}
	if (*p.Context).Err() != nil {
		t.Fatalf("context already done: %v", (*p.Context).Err())
	}

	cancel()
	if err := (*p.Context).Err(); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancel did not reach the request context, got %v", err)
	}
}
