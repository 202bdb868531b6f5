package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/kessan-board/internal/config"
	"github.com/xtding233/kessan-board/internal/engine"
	"github.com/xtding233/kessan-board/internal/reveal"
	"github.com/xtding233/kessan-board/internal/series"
	"github.com/xtding233/kessan-board/internal/session"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "kessan.v1.Board"

// BoardServer is the board API. Requests and responses are generic
// structs so the service needs no generated code.
type BoardServer interface {
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPayload(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Apply(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Start(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// NewServer returns a gRPC server with the board and health services registered.
func NewServer(sessions *session.Store, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	s := grpc.NewServer(opts...)
	Register(s, NewService(sessions))
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, hs)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return s, hs
}

// Service implements BoardServer over a session store.
type Service struct {
	sessions *session.Store
}

func NewService(sessions *session.Store) *Service {
	return &Service{sessions: sessions}
}

// CreateSession accepts optional players, years and seed.
func (s *Service) CreateSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var o config.Overrides
	if n, ok := number(in, "players"); ok {
		v := int(n)
		o.Players = &v
	}
	if raw, ok := text(in, "years"); ok {
		v := series.ParseYearCount(raw)
		o.Years = &v
	}
	if n, ok := number(in, "seed"); ok {
		if n < 0 {
			return nil, status.Error(codes.InvalidArgument, "seed must be >= 0")
		}
		v := uint64(n)
		o.Seed = &v
	}
	id, e, err := s.sessions.Create(o)
	if err != nil {
		return nil, toStatus(err)
	}
	return payloadStruct(id, e.Payload())
}

// GetPayload returns the current render payload of a session.
func (s *Service) GetPayload(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, e, err := s.board(in)
	if err != nil {
		return nil, err
	}
	return payloadStruct(id, e.Payload())
}

// Apply runs one edit: op is players, years, value, rename or skip.
func (s *Service) Apply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, e, err := s.board(in)
	if err != nil {
		return nil, err
	}
	op, _ := text(in, "op")
	switch op {
	case "players":
		n, ok := number(in, "n")
		if !ok {
			return nil, status.Error(codes.InvalidArgument, "players requires n")
		}
		err = e.SetPlayerCount(int(n))
	case "years":
		raw, _ := text(in, "n")
		err = e.SetYearCountRaw(raw)
	case "value":
		year, ok := number(in, "year")
		if !ok || year < 1 {
			return nil, status.Error(codes.InvalidArgument, "value requires year >= 1")
		}
		player, _ := text(in, "player")
		raw, _ := text(in, "value")
		err = e.SetValue(int(year)-1, player, raw)
	case "rename":
		player, _ := text(in, "player")
		name, _ := text(in, "name")
		err = e.Rename(player, name)
	case "skip":
		e.Skip()
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown op %q", op)
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return payloadStruct(id, e.Payload())
}

// Start locks the board and begins the reveal.
func (s *Service) Start(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, e, err := s.board(in)
	if err != nil {
		return nil, err
	}
	if err := e.Start(); err != nil {
		return nil, toStatus(err)
	}
	return payloadStruct(id, e.Payload())
}

func (s *Service) board(in *structpb.Struct) (string, *engine.Engine, error) {
	id, _ := text(in, "session")
	if id == "" {
		return "", nil, status.Error(codes.InvalidArgument, "session is required")
	}
	e, err := s.sessions.Get(id)
	if err != nil {
		return "", nil, toStatus(err)
	}
	return id, e, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, session.ErrFull):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, engine.ErrLocked), errors.Is(err, reveal.ErrAlreadyStarted):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Errorf(codes.Internal, "%v", err)
}

func number(in *structpb.Struct, key string) (float64, bool) {
	v, ok := in.GetFields()[key]
	if !ok {
		return 0, false
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return k.NumberValue, true
	case *structpb.Value_StringValue:
		n, err := strconv.ParseFloat(k.StringValue, 64)
		return n, err == nil
	}
	return 0, false
}

// text reads key as the raw string a form field would send.
func text(in *structpb.Struct, key string) (string, bool) {
	v, ok := in.GetFields()[key]
	if !ok {
		return "", false
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64), true
	}
	return "", false
}

func payloadStruct(id string, p engine.Payload) (*structpb.Struct, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode payload: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode payload: %v", err)
	}
	out, err := structpb.NewStruct(map[string]any{"id": id, "payload": m})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode payload: %v", err)
	}
	return out, nil
}

// PayloadFrom decodes the payload part of a response struct.
func PayloadFrom(out *structpb.Struct) (engine.Payload, error) {
	var p engine.Payload
	b, err := json.Marshal(out.GetFields()["payload"].GetStructValue().AsMap())
	if err != nil {
		return p, fmt.Errorf("payload: %w", err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("payload: %w", err)
	}
	return p, nil
}
