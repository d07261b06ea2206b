package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"hotdogstand/backend/internal/domain"
)

type Config struct {
	Port                  string
	AllowedOrigin         string
	MenuPath              string
	LedgerPath            string
	DatabaseURL           string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	SummaryTTLSeconds     int
	AuthSecret            string
	AccessTokenTTLMinutes int
	ManagerPIN            string
	TaxRatePercent        float64
	CardFeePercent        float64
	DefaultPaymentMethod  string
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	summaryTTL, err := strconv.Atoi(getEnv("SUMMARY_TTL_SECONDS", "30"))
	if err != nil || summaryTTL < 1 {
		summaryTTL = 30
	}
	tokenTTL, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}
	taxRate, err := strconv.ParseFloat(getEnv("DEFAULT_TAX_RATE_PERCENT", "8.0"), 64)
	if err != nil || taxRate < 0 || taxRate > 30 {
		taxRate = 8.0
	}
	cardFee, err := strconv.ParseFloat(getEnv("DEFAULT_CARD_FEE_PERCENT", "3.0"), 64)
	if err != nil || cardFee < 0 || cardFee > 10 {
		cardFee = 3.0
	}
	paymentMethod := strings.ToLower(getEnv("DEFAULT_PAYMENT_METHOD", "cash"))
	if !domain.IsSupportedPaymentMethod(paymentMethod) {
		paymentMethod = domain.PaymentCash
	}

	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		AllowedOrigin:         getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		MenuPath:              getEnv("MENU_PATH", "menu.csv"),
		LedgerPath:            getEnv("LEDGER_PATH", "sales.xlsx"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               redisDB,
		SummaryTTLSeconds:     summaryTTL,
		AuthSecret:            strings.TrimSpace(os.Getenv("AUTH_SECRET")),
		AccessTokenTTLMinutes: tokenTTL,
		ManagerPIN:            strings.TrimSpace(os.Getenv("MANAGER_PIN")),
		TaxRatePercent:        taxRate,
		CardFeePercent:        cardFee,
		DefaultPaymentMethod:  paymentMethod,
	}

	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
