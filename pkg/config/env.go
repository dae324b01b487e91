package config

const (
	EnvPrefix = "RETAIL"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "RETAIL_APP_ENV"
	EnvLogLevel     = "RETAIL_LOG_LEVEL"
	EnvLogWarnStack = "RETAIL_LOG_WARN_STACK"
	EnvLogFormat    = "RETAIL_LOG_FORMAT"

	EnvPromotionFile              = "RETAIL_PROMOTION_FILE"
	EnvPromotionSeasonalCategory  = "RETAIL_PROMOTION_SEASONAL_CATEGORY"
	EnvPromotionSeasonalRate      = "RETAIL_PROMOTION_SEASONAL_RATE"
	EnvPromotionBronzeRate        = "RETAIL_PROMOTION_BRONZE_RATE"
	EnvPromotionSilverRate        = "RETAIL_PROMOTION_SILVER_RATE"
	EnvPromotionGoldRate          = "RETAIL_PROMOTION_GOLD_RATE"
	EnvPromotionFirstPurchaseRate = "RETAIL_PROMOTION_FIRST_PURCHASE_RATE"
	EnvPromotionChurnBoostRate    = "RETAIL_PROMOTION_CHURN_BOOST_RATE"
	EnvPromotionMaxRate           = "RETAIL_PROMOTION_MAX_RATE"

	EnvRestockVariabilityRatio = "RETAIL_RESTOCK_VARIABILITY_RATIO"
	EnvRestockSafetyStockDays  = "RETAIL_RESTOCK_SAFETY_STOCK_DAYS"
)
