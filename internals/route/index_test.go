package routes_test

import (
	"net/http"
	"testing"
	"time"

	"sekolah_backend/internals/configs"
	"sekolah_backend/internals/constants"
	paymentService "sekolah_backend/internals/features/finance/payments/service"
	tagihanService "sekolah_backend/internals/features/finance/tagihan/service"
	authService "sekolah_backend/internals/features/users/auth/service"
	helperStorage "sekolah_backend/internals/helpers/storage"
	routes "sekolah_backend/internals/route"
	"sekolah_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := &configs.Config{
		App:     configs.AppConfig{Env: "test"},
		Auth:    configs.AuthConfig{JWTSecret: "s3cret", TokenTTL: time.Hour},
		Storage: configs.StorageConfig{Driver: "local", LocalDir: t.TempDir(), PublicPrefix: "/document"},
	}
	blob, err := helperStorage.NewLocalBlobService(cfg.Storage.LocalDir, cfg.Storage.PublicPrefix)
	require.NoError(t, err)
	lc := tagihanService.NewLifecycle()

	app := testutil.NewApp()
	routes.SetupRoutes(app, db, cfg, routes.Deps{
		Tokens:    authService.NewTokenService(db, cfg.Auth),
		Lifecycle: lc,
		Payments:  paymentService.NewPaymentService(db, nil, "server-key", lc),
		Blob:      blob,
	})
	return app, db
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, res := testutil.Do(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, res)
	token, _ := res["token"].(string)
	require.NotEmpty(t, token)
	return "Bearer " + token
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	app, _ := newServer(t)

	for _, path := range []string{"/api/siswa", "/api/tagihan", "/api/pengeluaran", "/api/users", "/api/auth/me"} {
		status, res := testutil.Do(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "MISSING_OR_MALFORMED_TOKEN", res["error_code"], path)
	}

	status, res := testutil.Do(t, app, http.MethodGet, "/api/siswa", nil, "Authorization", "Bearer bukan.token.valid")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "TOKEN_INVALID", res["error_code"])
}

func TestRoleBoundaries(t *testing.T) {
	app, db := newServer(t)
	k := testutil.SeedKaryawan(t, db, "Budi Santoso")
	testutil.SeedUser(t, db, "budi", "rahasia", constants.RoleGuru, nil, nil, &k.KaryawanID)
	testutil.SeedUser(t, db, "admin", "rahasia", constants.RoleAdmin, nil, nil, nil)

	guru := login(t, app, "budi", "rahasia")
	admin := login(t, app, "admin", "rahasia")

	status, res := testutil.Do(t, app, http.MethodGet, "/api/auth/me", nil, "Authorization", guru)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Budi Santoso", testutil.Data(t, res)["nama_pengguna"])

	// baca boleh untuk semua yang login
	status, _ = testutil.Do(t, app, http.MethodGet, "/api/karyawan", nil, "Authorization", guru)
	assert.Equal(t, http.StatusOK, status)

	// tulis data master khusus admin
	body := map[string]any{"nama_biaya": "SPP", "jumlah": 150000, "jenis_biaya": "pemasukan"}
	status, res = testutil.Do(t, app, http.MethodPost, "/api/masterbiaya", body, "Authorization", guru)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", res["error_code"])

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/masterbiaya", body, "Authorization", admin)
	assert.Equal(t, http.StatusCreated, status)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/users", nil, "Authorization", guru)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = testutil.Do(t, app, http.MethodGet, "/api/users", nil, "Authorization", admin)
	assert.Equal(t, http.StatusOK, status)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/payments/events", nil, "Authorization", guru)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestPublicRoutes(t *testing.T) {
	app, _ := newServer(t)

	status, res := testutil.Do(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", res["status"])
	assert.Equal(t, "test", res["environment"])

	// webhook tidak lewat AuthMiddleware; ditolak karena signature, bukan token
	status, res = testutil.Do(t, app, http.MethodPost, "/api/payments/midtrans/notification", map[string]any{
		"order_id":           "TGH-1-abcdef12",
		"status_code":        "200",
		"gross_amount":       "150000.00",
		"transaction_status": "settlement",
		"signature_key":      "palsu",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "TOKEN_INVALID", res["error_code"])

	status, res = testutil.Do(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "tidak-ada",
		"password": "salah",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", res["error_code"])
}
