package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/showdownbot/chart-engine/internal/card"
	"github.com/showdownbot/chart-engine/internal/chart"
	"github.com/showdownbot/chart-engine/internal/rules"
)

// Server implements ChartServiceServer on a card builder.
type Server struct {
	builder *card.Builder
	rules   rules.Resolver
	timeout time.Duration
	log     *logrus.Entry
}

var _ ChartServiceServer = (*Server)(nil)

func NewServer(b *card.Builder, r rules.Resolver, timeout time.Duration, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{builder: b, rules: r, timeout: timeout, log: log}
}

func (s *Server) BuildCard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	var in card.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	c, err := s.builder.Build(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := toStruct(c)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode card: %v", err)
	}
	if id := RequestID(ctx); id != "" {
		out.Fields["request_id"] = structpb.NewStringValue(id)
	}
	return out, nil
}

type setInfo struct {
	ID       string   `json:"id"`
	Expanded bool     `json:"expanded"`
	Era      string   `json:"era,omitempty"`
	Eras     []string `json:"eras,omitempty"`
	Version  string   `json:"version,omitempty"`
}

func (s *Server) ListSets(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ids, err := s.rules.Sets()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list sets: %v", err)
	}
	sets := make([]setInfo, 0, len(ids))
	for _, id := range ids {
		rs, err := s.rules.Resolve(id, "")
		if err != nil {
			s.log.WithError(err).WithField("set", id).Warn("skipping invalid set")
			continue
		}
		sets = append(sets, setInfo{ID: rs.ID, Expanded: rs.Expanded, Era: rs.Era, Eras: rs.Eras, Version: rs.Version})
	}
	return toStruct(map[string]any{"sets": sets})
}

// toStruct round-trips v through JSON into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

// toStatus maps domain errors onto gRPC codes.
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, card.ErrInvalidInput), errors.Is(err, chart.ErrInvalidOuts):
		code = codes.InvalidArgument
	case errors.Is(err, rules.ErrUnknownSet), errors.Is(err, rules.ErrUnknownEra):
		code = codes.NotFound
	case errors.Is(err, chart.ErrNoCandidatesFound),
		errors.Is(err, chart.ErrUnsupportedCategory),
		errors.Is(err, chart.ErrMissingOpponent):
		code = codes.FailedPrecondition
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	}
	return status.Error(code, err.Error())
}
