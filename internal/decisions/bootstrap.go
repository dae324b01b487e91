package decisions

import (
	"fmt"

	"github.com/angelmondragon/retail-decisions/internal/domain"
	"github.com/angelmondragon/retail-decisions/pkg/config"
	"github.com/angelmondragon/retail-decisions/pkg/env"
	"github.com/angelmondragon/retail-decisions/pkg/logger"
	"github.com/angelmondragon/retail-decisions/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "retail-decisions"

// Runtime bundles a configured service with the default promotion rule set.
type Runtime struct {
	Config  *config.Config
	Rules   domain.PromotionRules
	Logger  *logger.Logger
	Metrics *metrics.DecisionMetrics
	Service Service
}

// Bootstrap loads optional .env files, reads RETAIL_* configuration, and wires
// the decisions service. A nil registerer disables metric collection.
func Bootstrap(reg prometheus.Registerer, envFiles ...string) (*Runtime, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewRuntime(cfg, reg)
}

// NewRuntime wires the service from an already loaded configuration.
func NewRuntime(cfg *config.Config, reg prometheus.Registerer) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	rules, err := cfg.Promotion.Rules()
	if err != nil {
		return nil, fmt.Errorf("resolving promotion rules: %w", err)
	}

	instanceID := env.InstanceID()
	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		InstanceID:  instanceID,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	decisionMetrics := metrics.NewDecisionMetrics(reg)

	svc, err := NewService(ServiceParams{
		Logger:        logg,
		Metrics:       decisionMetrics,
		Policy:        cfg.Restock.Policy(),
		InstanceID:    instanceID,
		ValidateInput: true,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{
		Config:  cfg,
		Rules:   rules,
		Logger:  logg,
		Metrics: decisionMetrics,
		Service: svc,
	}, nil
}
