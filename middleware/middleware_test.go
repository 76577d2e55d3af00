package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/id"
	mw "github.com/xraph/statecraft/middleware"
)

func newTestInvocation() *statecraft.Invocation {
	return &statecraft.Invocation{
		ID:        id.NewDispatchID(),
		Model:     "cart",
		Namespace: "items",
		Action:    "addItem",
		Args:      []any{"sku-1"},
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) mw.Middleware {
		return func(ctx context.Context, _ *statecraft.Invocation, next mw.Handler) (any, error) {
			order = append(order, name+":before")
			out, err := next(ctx)
			order = append(order, name+":after")
			return out, err
		}
	}

	chain := mw.Chain(tag("outer"), tag("inner"))
	out, err := chain(context.Background(), newTestInvocation(), func(_ context.Context) (any, error) {
		order = append(order, "handler")
		return "done", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "done" {
		t.Errorf("out = %v, want %q", out, "done")
	}

	want := []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestChain_Empty(t *testing.T) {
	chain := mw.Chain()
	out, err := chain(context.Background(), newTestInvocation(), func(_ context.Context) (any, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != 42 {
		t.Errorf("out = %v, want 42", out)
	}
}

func TestRecover_ConvertsPanic(t *testing.T) {
	m := mw.Recover(slog.Default())
	out, err := m(context.Background(), newTestInvocation(), func(_ context.Context) (any, error) {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected error from panic")
	}
	if out != nil {
		t.Errorf("out = %v, want nil", out)
	}
	if !strings.Contains(err.Error(), "addItem") {
		t.Errorf("error %q does not name the action", err)
	}
}

func TestRecover_PassThrough(t *testing.T) {
	m := mw.Recover(slog.Default())
	want := errors.New("action failed")
	_, err := m(context.Background(), newTestInvocation(), func(_ context.Context) (any, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestTimeout_DeadlineExceeded(t *testing.T) {
	inv := newTestInvocation()
	inv.Timeout = 10 * time.Millisecond

	m := mw.Timeout(slog.Default())
	_, err := m(context.Background(), inv, func(ctx context.Context) (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return nil, nil
		}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestTimeout_ZeroMeansNone(t *testing.T) {
	m := mw.Timeout(slog.Default())
	_, err := m(context.Background(), newTestInvocation(), func(ctx context.Context) (any, error) {
		if _, ok := ctx.Deadline(); ok {
			t.Error("unexpected deadline on context")
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogging_PassesThrough(t *testing.T) {
	m := mw.Logging(slog.Default())
	want := errors.New("nope")
	out, err := m(context.Background(), newTestInvocation(), func(_ context.Context) (any, error) {
		return "v", want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
	if out != "v" {
		t.Errorf("out = %v, want %q", out, "v")
	}
}
