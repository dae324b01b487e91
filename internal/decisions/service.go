// Package decisions evaluates the pricing and fulfillment engines together for
// a single order and records how each evaluation went.
package decisions

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/retail-decisions/internal/domain"
	"github.com/angelmondragon/retail-decisions/internal/fulfillment"
	"github.com/angelmondragon/retail-decisions/internal/pricing"
	"github.com/angelmondragon/retail-decisions/internal/restock"
	"github.com/angelmondragon/retail-decisions/pkg/enums"
	pkgerrors "github.com/angelmondragon/retail-decisions/pkg/errors"
	"github.com/angelmondragon/retail-decisions/pkg/logger"
	"github.com/angelmondragon/retail-decisions/pkg/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/angelmondragon/retail-decisions/internal/decisions"

const (
	enginePricing     = "pricing"
	engineFulfillment = "fulfillment"
	engineRestock     = "restock"
)

// Request is the immutable snapshot evaluated by Decide.
type Request struct {
	Order      domain.Order                   `json:"order"`
	Customer   domain.CustomerProfile         `json:"customer"`
	Rules      domain.PromotionRules          `json:"rules"`
	Region     string                         `json:"region"`
	Warehouses []domain.WarehouseAvailability `json:"warehouses"`
	// At is the pricing reference time. Zero means the service clock.
	At time.Time `json:"at"`
}

// Decision combines the pricing breakdown with the warehouse recommendation.
type Decision struct {
	ID          string                     `json:"decision_id"`
	EvaluatedAt time.Time                  `json:"evaluated_at"`
	Pricing     pricing.Computation        `json:"pricing"`
	Fulfillment fulfillment.Recommendation `json:"fulfillment"`
}

// ForecastRequest asks the forecaster for a restock quantity for one SKU.
type ForecastRequest struct {
	SKU           string    `json:"sku"`
	SalesHistory  []float64 `json:"sales_history"`
	PendingOrders int       `json:"pending_orders"`
	LeadTimeDays  int       `json:"lead_time_days"`
}

// Service evaluates retail decisions. Implementations hold no state between calls.
type Service interface {
	Decide(ctx context.Context, req Request) (Decision, error)
	Price(ctx context.Context, order domain.Order, customer domain.CustomerProfile, rules domain.PromotionRules, at time.Time) (pricing.Computation, error)
	Fulfill(ctx context.Context, orderID, region string, items []domain.LineItem, warehouses []domain.WarehouseAvailability) (fulfillment.Recommendation, error)
	Forecast(ctx context.Context, req ForecastRequest) (restock.Recommendation, error)
}

// ServiceParams wires the service collaborators.
type ServiceParams struct {
	Logger     *logger.Logger
	Metrics    *metrics.DecisionMetrics
	Tracer     trace.Tracer
	Forecaster restock.Forecaster
	Policy     restock.Policy
	Now        func() time.Time
	InstanceID string
	// ValidateInput rejects malformed snapshots with INVALID_INPUT before evaluating.
	ValidateInput bool
}

type service struct {
	logg          *logger.Logger
	metrics       *metrics.DecisionMetrics
	tracer        trace.Tracer
	forecaster    restock.Forecaster
	policy        restock.Policy
	now           func() time.Time
	instanceID    string
	validateInput bool
}

// NewService builds the decisions service.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.Metrics == nil {
		return nil, errors.New("decision metrics are required")
	}
	if params.Policy.VariabilityRatio < 0 || params.Policy.SafetyStockDays < 0 {
		return nil, errors.New("restock policy must be non-negative")
	}
	tracer := params.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	forecaster := params.Forecaster
	if forecaster == nil {
		forecaster = restock.MovingAverage{}
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		logg:          params.Logger,
		metrics:       params.Metrics,
		tracer:        tracer,
		forecaster:    forecaster,
		policy:        params.Policy,
		now:           now,
		instanceID:    params.InstanceID,
		validateInput: params.ValidateInput,
	}, nil
}

func (s *service) Decide(ctx context.Context, req Request) (Decision, error) {
	decision := Decision{
		ID:          uuid.NewString(),
		EvaluatedAt: s.now().UTC(),
	}
	at := req.At
	if at.IsZero() {
		at = decision.EvaluatedAt
	}

	ctx = s.logg.WithDecision(ctx, decision.ID, req.Order.ID, req.Customer.ID)

	ctx, span := s.tracer.Start(ctx, "decisions.Decide", trace.WithAttributes(
		attribute.String("decision.id", decision.ID),
		attribute.String("service.instance.id", s.instanceID),
		attribute.String("order.id", req.Order.ID),
		attribute.String("fulfillment.region", req.Region),
		attribute.Int("order.lines", len(req.Order.Items)),
	))
	defer span.End()

	if s.validateInput {
		if err := s.validate(req); err != nil {
			return Decision{}, s.fail(ctx, span, "decision input rejected", err)
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		decision.Pricing = s.price(groupCtx, req.Order, req.Customer, req.Rules, at)
		return nil
	})
	group.Go(func() error {
		rec, err := s.fulfill(groupCtx, req.Order.ID, req.Region, req.Order.Items, req.Warehouses)
		if err != nil {
			return err
		}
		decision.Fulfillment = rec
		return nil
	})
	if err := group.Wait(); err != nil {
		return Decision{}, s.fail(ctx, span, "decision evaluation failed", err)
	}

	span.SetAttributes(
		attribute.String("pricing.discount_rate", decision.Pricing.DiscountRate.String()),
		attribute.String("fulfillment.warehouse_id", decision.Fulfillment.WarehouseID),
		attribute.String("fulfillment.outcome", decision.Fulfillment.Outcome.String()),
	)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"discount_rate": decision.Pricing.DiscountRate.String(),
		"final_total":   decision.Pricing.FinalTotal.StringFixed(2),
		"warehouse_id":  decision.Fulfillment.WarehouseID,
		"fill_rate":     decision.Fulfillment.FillRate,
		"outcome":       decision.Fulfillment.Outcome.String(),
	})
	if decision.Fulfillment.Outcome == enums.FulfillmentOutcomeFallback {
		s.logg.Warn(logCtx, "fulfillment fell back to best effort")
	}
	s.logg.Info(logCtx, "decision evaluated")
	return decision, nil
}

func (s *service) Price(ctx context.Context, order domain.Order, customer domain.CustomerProfile, rules domain.PromotionRules, at time.Time) (pricing.Computation, error) {
	if s.validateInput {
		if err := domain.ValidatePricingInput(order, customer, rules); err != nil {
			s.metrics.IncFailure(string(pkgerrors.CodeInvalidInput))
			return pricing.Computation{}, err
		}
	}
	if at.IsZero() {
		at = s.now()
	}
	return s.price(ctx, order, customer, rules, at), nil
}

func (s *service) Fulfill(ctx context.Context, orderID, region string, items []domain.LineItem, warehouses []domain.WarehouseAvailability) (fulfillment.Recommendation, error) {
	if s.validateInput {
		if err := domain.ValidateWarehouses(warehouses); err != nil {
			s.metrics.IncFailure(string(pkgerrors.CodeInvalidInput))
			return fulfillment.Recommendation{}, err
		}
	}
	rec, err := s.fulfill(ctx, orderID, region, items, warehouses)
	if err != nil {
		s.metrics.IncFailure(string(codeOf(err)))
		return fulfillment.Recommendation{}, err
	}
	return rec, nil
}

func (s *service) Forecast(ctx context.Context, req ForecastRequest) (restock.Recommendation, error) {
	ctx, span := s.tracer.Start(ctx, "restock.Forecast", trace.WithAttributes(
		attribute.String("restock.sku", req.SKU),
		attribute.Int("restock.lead_time_days", req.LeadTimeDays),
	))
	defer span.End()

	started := time.Now()
	rec, err := s.forecaster.Forecast(req.SalesHistory, req.PendingOrders, req.LeadTimeDays, s.policy)
	s.metrics.ObserveDuration(engineRestock, time.Since(started))
	if err != nil {
		ctx = s.logg.WithField(ctx, "sku", req.SKU)
		return restock.Recommendation{}, s.fail(ctx, span, "restock forecast failed", err)
	}
	span.SetAttributes(attribute.Int64("restock.recommended_order", rec.RecommendedOrder))
	return rec, nil
}

func (s *service) price(ctx context.Context, order domain.Order, customer domain.CustomerProfile, rules domain.PromotionRules, at time.Time) pricing.Computation {
	_, span := s.tracer.Start(ctx, "pricing.Compute")
	defer span.End()

	started := time.Now()
	result := pricing.Compute(order, customer, rules, at)
	s.metrics.ObserveDuration(enginePricing, time.Since(started))
	for _, rule := range result.Audit.Rules() {
		s.metrics.IncRuleFiring(string(rule))
	}
	span.SetAttributes(attribute.Int("pricing.rules_fired", len(result.Audit)))
	return result
}

func (s *service) fulfill(ctx context.Context, orderID, region string, items []domain.LineItem, warehouses []domain.WarehouseAvailability) (fulfillment.Recommendation, error) {
	_, span := s.tracer.Start(ctx, "fulfillment.Select", trace.WithAttributes(
		attribute.Int("fulfillment.candidates", len(warehouses)),
	))
	defer span.End()

	started := time.Now()
	rec, err := fulfillment.Select(orderID, region, items, warehouses)
	s.metrics.ObserveDuration(engineFulfillment, time.Since(started))
	if err != nil {
		s.metrics.IncFulfillment(enums.FulfillmentOutcomeFailed.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fulfillment.Recommendation{}, err
	}
	s.metrics.IncFulfillment(rec.Outcome.String())
	return rec, nil
}

func (s *service) validate(req Request) error {
	if err := domain.ValidatePricingInput(req.Order, req.Customer, req.Rules); err != nil {
		return err
	}
	return domain.ValidateWarehouses(req.Warehouses)
}

func (s *service) fail(ctx context.Context, span trace.Span, msg string, err error) error {
	code := codeOf(err)
	s.metrics.IncFailure(string(code))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logg.Error(s.logg.WithFields(ctx, map[string]any{
		"error_code": string(code),
		"retryable":  pkgerrors.Retryable(err),
		"error_dump": pkgerrors.Dump(err),
	}), msg, err)
	return err
}

func codeOf(err error) pkgerrors.Code {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code()
	}
	return pkgerrors.CodeInternal
}
