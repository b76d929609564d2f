package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"sekolah_backend/internals/features/school/orang_tua/route"
	authMiddleware "sekolah_backend/internals/middlewares/auth"
	"sekolah_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app, api := testutil.NewAPI(testutil.Admin())
	route.OrangTuaRoutes(api, db, authMiddleware.AdminOnly())
	return app
}

func TestOrangTuaDetailListsChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	wali := testutil.SeedKaryawan(t, db, "Budi")
	k := testutil.SeedKelas(t, db, "7A", wali.KaryawanID)
	ortu := testutil.SeedOrangTua(t, db, "Ahmad", "Siti")
	a := testutil.SeedSiswa(t, db, "Aisyah", k.KelasID, ortu.OrtuID)
	b := testutil.SeedSiswa(t, db, "Umar", k.KelasID, ortu.OrtuID)
	lain := testutil.SeedOrangTua(t, db, "Rudi", "Rina")
	testutil.SeedSiswa(t, db, "Zaid", k.KelasID, lain.OrtuID)

	status, res := testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/orangtua/%d", ortu.OrtuID), nil)
	require.Equal(t, http.StatusOK, status)
	data := testutil.Data(t, res)
	assert.Equal(t, "Ahmad", data["nama_ayah"])
	assert.Equal(t, []any{float64(a.SiswaID), float64(b.SiswaID)}, data["siswa_ids"])
	anak := data["siswa"].([]any)
	require.Len(t, anak, 2)
	assert.Equal(t, "7A", anak[0].(map[string]any)["kelas"].(map[string]any)["nama_kelas"])

	kosong := testutil.SeedOrangTua(t, db, "Hasan", "Aminah")
	status, res = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/orangtua/%d", kosong.OrtuID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, testutil.Data(t, res)["siswa_ids"])

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/orangtua/9999", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrangTuaCreateUpdateDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)

	status, res := testutil.Do(t, app, http.MethodPost, "/api/orangtua", map[string]any{
		"nama_ayah": "Ahmad",
		"nama_ibu":  "Siti",
		"no_hp":     "081298765432",
	})
	require.Equal(t, http.StatusCreated, status, res)
	id := testutil.Data(t, res)["ortu_id"]
	path := fmt.Sprintf("/api/orangtua/%v", id)

	status, res = testutil.Do(t, app, http.MethodPost, "/api/orangtua", map[string]any{"nama_ayah": "Ahmad"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_FIELD", res["error_code"])

	status, res = testutil.Do(t, app, http.MethodPatch, path, map[string]any{"no_hp": "12"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FORMAT", res["error_code"])

	status, res = testutil.Do(t, app, http.MethodPatch, path, map[string]any{"nama_ibu": "Siti Aminah"})
	require.Equal(t, http.StatusOK, status, res)
	assert.Equal(t, "Siti Aminah", testutil.Data(t, res)["nama_ibu"])
	assert.Equal(t, "Ahmad", testutil.Data(t, res)["nama_ayah"])

	wali := testutil.SeedKaryawan(t, db, "Budi")
	k := testutil.SeedKelas(t, db, "7A", wali.KaryawanID)
	var ortuID uint
	require.NoError(t, db.Table("tb_ortu").Select("ortu_id").Row().Scan(&ortuID))
	s := testutil.SeedSiswa(t, db, "Aisyah", k.KelasID, ortuID)

	status, res = testutil.Do(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Data orang tua masih dipakai oleh siswa", res["message"])

	require.NoError(t, db.Delete(s).Error)
	status, _ = testutil.Do(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, status)
}
