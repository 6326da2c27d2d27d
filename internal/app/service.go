// Package service provides the prediction pipeline that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"

	"github.com/okian/progno/internal/domain/features"
	"github.com/okian/progno/internal/domain/scoring"
	"github.com/okian/progno/pkg/logger"
	"github.com/okian/progno/pkg/metrics"
)

// Service wires validation, vectorization, and the remote scoring call.
// It holds no mutable per-request state; concurrent requests are isolated
// by construction.
type Service struct {
	featureSet *features.Set
	scorer     scoring.Scorer
	logger     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFeatureNames sets the model's expected feature names in column
// order.
func WithFeatureNames(names []string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.featureSet = features.NewSet(names)
		}
	}
}

// WithScorer sets the remote scoring client.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. A scorer must be provided via WithScorer
// before Predict is called.
func New(opts ...Option) *Service {
	s := &Service{}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.featureSet == nil {
		s.featureSet = features.NewSet(nil)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// FeatureNames returns the declared feature names in column order.
func (s *Service) FeatureNames() []string {
	return s.featureSet.Names()
}

// Predict runs the pipeline for one request: validate the raw mapping,
// vectorize it in declared column order, score it remotely, and interpret
// the answer. The returned value is the first element of a "predictions"
// sequence when the endpoint provides one, otherwise the whole response
// document.
func (s *Service) Predict(ctx context.Context, raw map[string]any) (any, error) {
	if err := s.featureSet.Validate(raw); err != nil {
		s.logger.Debug(ctx, "input rejected", logger.Error(err))
		return nil, err
	}

	row := s.featureSet.Vectorize(raw)
	req := scoring.NewRequest(s.featureSet.Names(), row)

	resp, err := s.scorer.Score(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "scoring call failed", logger.Error(err))
		return nil, err
	}

	metrics.RecordPrediction()
	return resp.Prediction(), nil
}
