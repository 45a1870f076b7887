package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5432", Name: "laundry", User: "app",
		Password: "secret", SSLMode: "disable", Timezone: "Africa/Nairobi",
	}

	assert.Equal(t,
		"host=db user=app password=secret dbname=laundry port=5432 sslmode=disable TimeZone=Africa/Nairobi",
		cfg.DSN())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RECEIPT_WORKERS", "4")

	cfg := Load()

	assert.Equal(t, 168, int(cfg.JWT.ExpiryHours.Hours()))
	assert.Equal(t, 30, cfg.Receipt.RetentionDays)
	assert.Equal(t, 4, cfg.Receipt.Workers)
	assert.Equal(t, 300, int(cfg.Redis.CacheTTL.Seconds()))
	assert.Equal(t, "Luku Safi Laundromat", cfg.Store.Name)
	assert.Equal(t, "./storage/receipts", cfg.Storage.ReceiptDir())
}
