package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/stupnd/trippy-sub001/internal/adapters/redis"
	"github.com/stupnd/trippy-sub001/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	in := []domain.ScoredOption{{
		CandidateOption: domain.CandidateOption{ID: "f1", Category: domain.CategoryFlight, Price: 420},
		Score:           88,
		IsBestValue:     true,
	}}
	if err := c.Set(ctx, "recs:t1:flights", in, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out []domain.ScoredOption
	ok, err := c.Get(ctx, "recs:t1:flights", &out)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].ID != "f1" || out[0].Score != 88 || !out[0].IsBestValue {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := c.Del(ctx, "recs:t1:flights"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	ok, _ = c.Get(ctx, "recs:t1:flights", &out)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_MissIsNotError(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	var out []domain.ScoredOption
	ok, err := c.Get(context.Background(), "nope", &out)
	if err != nil {
		t.Fatalf("miss should not error: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}
