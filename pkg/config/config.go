package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/angelmondragon/retail-decisions/internal/domain"
	"github.com/angelmondragon/retail-decisions/internal/restock"
	"github.com/angelmondragon/retail-decisions/pkg/enums"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig
	Promotion PromotionConfig
	Restock   RestockConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Restock.validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Promotion.Rules(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads the given .env files (default ".env") into the process
// environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"RETAIL_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"RETAIL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RETAIL_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"RETAIL_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PromotionConfig describes the default promotion rule set. When File is set
// the YAML document replaces the individual rate variables.
type PromotionConfig struct {
	File              string  `envconfig:"RETAIL_PROMOTION_FILE"`
	SeasonalCategory  string  `envconfig:"RETAIL_PROMOTION_SEASONAL_CATEGORY" default:"seasonal"`
	SeasonalRate      float64 `envconfig:"RETAIL_PROMOTION_SEASONAL_RATE" default:"0.08"`
	BronzeRate        float64 `envconfig:"RETAIL_PROMOTION_BRONZE_RATE" default:"0.01"`
	SilverRate        float64 `envconfig:"RETAIL_PROMOTION_SILVER_RATE" default:"0.03"`
	GoldRate          float64 `envconfig:"RETAIL_PROMOTION_GOLD_RATE" default:"0.05"`
	FirstPurchaseRate float64 `envconfig:"RETAIL_PROMOTION_FIRST_PURCHASE_RATE" default:"0.08"`
	ChurnBoostRate    float64 `envconfig:"RETAIL_PROMOTION_CHURN_BOOST_RATE" default:"0.12"`
	MaxRate           float64 `envconfig:"RETAIL_PROMOTION_MAX_RATE" default:"0.25"`
}

// Rules resolves the configured promotion rule set and validates every rate.
func (p PromotionConfig) Rules() (domain.PromotionRules, error) {
	if p.File != "" {
		return LoadPromotionFile(p.File)
	}
	category, err := enums.ParseLineItemCategory(p.SeasonalCategory)
	if err != nil {
		return domain.PromotionRules{}, fmt.Errorf("%s: %w", EnvPromotionSeasonalCategory, err)
	}
	rules := domain.PromotionRules{
		SeasonalCategory: category,
		SeasonalRate:     p.SeasonalRate,
		LoyaltyRates: domain.LoyaltyRates{
			Bronze: p.BronzeRate,
			Silver: p.SilverRate,
			Gold:   p.GoldRate,
		},
		FirstPurchaseBonus: p.FirstPurchaseRate,
		ChurnRecoveryBoost: p.ChurnBoostRate,
		MaxDiscountRate:    p.MaxRate,
	}
	if err := domain.ValidatePromotionRules(rules); err != nil {
		return domain.PromotionRules{}, err
	}
	return rules, nil
}

// LoadPromotionFile decodes a YAML promotion rule set. Unknown keys are rejected.
func LoadPromotionFile(path string) (domain.PromotionRules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.PromotionRules{}, fmt.Errorf("reading promotion file: %w", err)
	}
	return ParsePromotionRules(raw)
}

// ParsePromotionRules decodes and validates a YAML promotion rule set.
func ParsePromotionRules(raw []byte) (domain.PromotionRules, error) {
	var rules domain.PromotionRules
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rules); err != nil {
		return domain.PromotionRules{}, fmt.Errorf("decoding promotion rules: %w", err)
	}
	if err := domain.ValidatePromotionRules(rules); err != nil {
		return domain.PromotionRules{}, err
	}
	return rules, nil
}

type RestockConfig struct {
	VariabilityRatio float64 `envconfig:"RETAIL_RESTOCK_VARIABILITY_RATIO" default:"0.25"`
	SafetyStockDays  float64 `envconfig:"RETAIL_RESTOCK_SAFETY_STOCK_DAYS" default:"2"`
}

// Policy returns the restock policy for the forecaster.
func (r RestockConfig) Policy() restock.Policy {
	return restock.Policy{
		VariabilityRatio: r.VariabilityRatio,
		SafetyStockDays:  r.SafetyStockDays,
	}
}

func (r RestockConfig) validate() error {
	if r.VariabilityRatio < 0 {
		return fmt.Errorf("%s must be non-negative", EnvRestockVariabilityRatio)
	}
	if r.SafetyStockDays < 0 {
		return fmt.Errorf("%s must be non-negative", EnvRestockSafetyStockDays)
	}
	return nil
}
