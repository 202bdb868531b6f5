package rpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/xtding233/kessan-board/internal/config"
	"github.com/xtding233/kessan-board/internal/engine"
	"github.com/xtding233/kessan-board/internal/reveal"
	"github.com/xtding233/kessan-board/internal/rpc"
	"github.com/xtding233/kessan-board/internal/series"
	"github.com/xtding233/kessan-board/internal/session"
)

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()
	store := session.NewStore(func(o config.Overrides) (engine.Config, error) {
		cfg := config.Normalize(config.RawConfig{}, o)
		cfg.RevealDelay = time.Hour
		return cfg, nil
	}, 0)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv, _ := rpc.NewServer(store)
	go func() { _ = srv.Serve(listener) }()

	conn, err := grpc.NewClient(listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		srv.GracefulStop()
		store.Close()
	})
	return conn
}

func TestBoardOverGRPC(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := rpc.NewClient(conn)

	out, err := c.CreateSession(ctx, map[string]any{"players": 1, "years": "2", "seed": 3})
	if err != nil {
		t.Fatal(err)
	}
	id := out.GetFields()["id"].GetStringValue()
	if id == "" {
		t.Fatalf("no session id in %v", out)
	}

	for _, edit := range []map[string]any{
		{"session": id, "op": "value", "year": 1, "player": "player1", "value": "-200"},
		{"session": id, "op": "value", "year": 2, "player": "player1", "value": 1000},
		{"session": id, "op": "rename", "player": "player1", "name": "社長"},
	} {
		if _, err := c.Apply(ctx, edit); err != nil {
			t.Fatalf("apply %v: %v", edit, err)
		}
	}

	out, err = c.Start(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	p, err := rpc.PayloadFrom(out)
	if err != nil {
		t.Fatal(err)
	}
	if p.Phase != reveal.Animating || p.Bounds.Min != -400 || p.Bounds.Mid != 400 || p.Bounds.Max != 1200 {
		t.Fatalf("payload %+v", p)
	}
	if p.Roster[0].Name != "社長" {
		t.Fatalf("roster %+v", p.Roster)
	}

	_, err = c.Apply(ctx, map[string]any{"session": id, "op": "years", "n": "5"})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("edit after start: %v", err)
	}
	if _, err := c.Apply(ctx, map[string]any{"session": id, "op": "skip"}); err != nil {
		t.Fatal(err)
	}
	out, err = c.GetPayload(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := rpc.PayloadFrom(out); p.Phase != reveal.Result || p.Years != 2 {
		t.Fatalf("result payload %+v", p)
	}
}

func TestLargeValuesSurviveTheWire(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := rpc.NewClient(conn)

	out, err := c.CreateSession(ctx, map[string]any{"players": 2, "years": 1, "seed": 1})
	if err != nil {
		t.Fatal(err)
	}
	id := out.GetFields()["id"].GetStringValue()
	for player, raw := range map[string]string{"player1": "9007199254740991", "player2": "-99999999999999999999"} {
		edit := map[string]any{"session": id, "op": "value", "year": 1, "player": player, "value": raw}
		if _, err := c.Apply(ctx, edit); err != nil {
			t.Fatalf("apply %v: %v", edit, err)
		}
	}
	out, err = c.GetPayload(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	p, err := rpc.PayloadFrom(out)
	if err != nil {
		t.Fatal(err)
	}
	got := p.Points[1].Values
	if got["player1"] != series.MaxValue-1 || got["player2"] != -series.MaxValue {
		t.Fatalf("values %v", got)
	}
	if p.Bounds.Min >= p.Bounds.Max || p.Bounds.Max < series.MaxValue-1 || p.Bounds.Min > -series.MaxValue {
		t.Fatalf("bounds %+v", p.Bounds)
	}
}

func TestGRPCErrors(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := rpc.NewClient(conn)

	if _, err := c.GetPayload(ctx, "missing"); status.Code(err) != codes.NotFound {
		t.Fatalf("missing session: %v", err)
	}
	if _, err := c.GetPayload(ctx, ""); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("empty session: %v", err)
	}
	out, err := c.CreateSession(ctx, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	id := out.GetFields()["id"].GetStringValue()
	if _, err := c.Apply(ctx, map[string]any{"session": id, "op": "explode"}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("unknown op: %v", err)
	}
	if _, err := c.Apply(ctx, map[string]any{"session": id, "op": "players"}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("players without n: %v", err)
	}
}

func TestHealth(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: rpc.ServiceName})
	if err != nil {
		t.Fatal(err)
	}
	if res.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("status %s", res.GetStatus())
	}
}
