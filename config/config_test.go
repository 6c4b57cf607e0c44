package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("NOTIFY_TIMEOUT", "")
	cfg := Load()
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "notifications", cfg.RabbitMQNotifyQueue)
	assert.False(t, cfg.SMSEnabled)
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("MONGODB_DATABASE", "gallery_test")
	t.Setenv("SMS_ENABLED", "true")
	t.Setenv("NOTIFY_TIMEOUT", "not-a-duration")
	t.Setenv("REDIS_DB", "x")
	cfg := Load()
	assert.Equal(t, "gallery_test", cfg.MongoDatabase)
	assert.True(t, cfg.SMSEnabled)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestPostgresDSNEscapesCredentials(t *testing.T) {
	cfg := &Config{DBUser: "app", DBPassword: "p@ss:word", DBHost: "db", DBPort: "5432", DBName: "audit", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/audit?sslmode=disable", cfg.PostgresDSN())
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}

func TestCredentialChecks(t *testing.T) {
	cfg := &Config{TwilioAccountSID: "AC1", TwilioAuthToken: "t"}
	assert.False(t, cfg.TwilioConfigured())
	cfg.TwilioFromNumber = "+15550000000"
	assert.True(t, cfg.TwilioConfigured())
	assert.False(t, cfg.MailgunConfigured())
}
