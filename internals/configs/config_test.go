package configs

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "/document", cfg.Storage.PublicPrefix)
	assert.Equal(t, int64(20*1024*1024), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, 25*1024*1024, cfg.App.BodyLimit)
	assert.Equal(t, "15 2 * * *", cfg.Reaper.Schedule)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.App.AllowOrigins)
}

func TestFromViperRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := FromViper(newViper())
	assert.Error(t, err)
}

func TestFromViperOSSNeedsCredentials(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("JWT_TTL", "1h")
	v.Set("STORAGE_DRIVER", "oss")
	v.Set("UPLOAD_MAX_MB", 20)

	_, err := FromViper(v)
	assert.Error(t, err)

	v.Set("ALI_OSS_ENDPOINT", "oss-ap-southeast-5.aliyuncs.com")
	v.Set("ALI_OSS_ACCESS_KEY", "ak")
	v.Set("ALI_OSS_SECRET_KEY", "sk")
	v.Set("ALI_OSS_BUCKET", "sekolah")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "sekolah", cfg.Storage.OSS.Bucket)
}

func TestPostgresDSN(t *testing.T) {
	d := DBConfig{User: "u", Password: "p", Host: "h", Port: "5432", Name: "n", SSLMode: "disable", StatementTimeout: 3 * time.Second}
	assert.Equal(t,
		"postgres://u:p@h:5432/n?sslmode=disable&application_name=sekolah&options=-c%20statement_timeout=3000",
		d.PostgresDSN())

	d.DSN = "postgres://override"
	assert.Equal(t, "postgres://override", d.PostgresDSN())
}
