package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/finance/master_biaya/route"
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
	route.MasterBiayaRoutes(api, db, authMiddleware.AdminOnly())
	return app
}

func TestCreateMasterBiaya(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	k := testutil.SeedKaryawan(t, db, "Bendahara")

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"lengkap", map[string]any{"nama_biaya": "SPP", "jumlah": "150000", "jenis_biaya": "pemasukan", "karyawan_id": k.KaryawanID}, http.StatusCreated, ""},
		{"alias jenis", map[string]any{"nama_biaya": "Listrik", "jumlah": 250000.75, "jenis_biaya": "expenditure"}, http.StatusCreated, ""},
		{"jumlah minimum", map[string]any{"nama_biaya": "Materai", "jumlah": 0.01, "jenis_biaya": "pengeluaran"}, http.StatusCreated, ""},
		{"jumlah nol", map[string]any{"nama_biaya": "x", "jumlah": 0, "jenis_biaya": "pemasukan"}, http.StatusBadRequest, "INVALID_FORMAT"},
		{"jumlah negatif", map[string]any{"nama_biaya": "x", "jumlah": -1, "jenis_biaya": "pemasukan"}, http.StatusBadRequest, "INVALID_FORMAT"},
		{"jenis salah", map[string]any{"nama_biaya": "x", "jumlah": 10, "jenis_biaya": "hibah"}, http.StatusBadRequest, "INVALID_FORMAT"},
		{"tanpa nama", map[string]any{"jumlah": 10, "jenis_biaya": "pemasukan"}, http.StatusBadRequest, "MISSING_FIELD"},
		{"karyawan tidak ada", map[string]any{"nama_biaya": "x", "jumlah": 10, "jenis_biaya": "pemasukan", "karyawan_id": 9999}, http.StatusBadRequest, "REFERENCE_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, res := testutil.Do(t, app, http.MethodPost, "/api/masterbiaya", tc.body)
			require.Equal(t, tc.status, status, res)
			if tc.code != "" {
				assert.Equal(t, tc.code, res["error_code"])
			}
		})
	}

	status, res := testutil.Do(t, app, http.MethodGet, "/api/masterbiaya?jenis_biaya=pengeluaran", nil)
	require.Equal(t, http.StatusOK, status)
	rows := res["data"].([]any)
	require.Len(t, rows, 2)
	listrik := rows[0].(map[string]any)
	assert.Equal(t, "pengeluaran", listrik["jenis_biaya"])
	assert.EqualValues(t, 250000.75, listrik["jumlah"])
}

func TestMasterBiayaFilterByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	testutil.SeedMasterBiaya(t, db, "SPP Juli", constants.JenisPemasukan, "150000")
	testutil.SeedMasterBiaya(t, db, "spp Agustus", constants.JenisPemasukan, "150000")
	testutil.SeedMasterBiaya(t, db, "Uang Gedung", constants.JenisPemasukan, "2000000")

	status, res := testutil.Do(t, app, http.MethodGet, "/api/masterbiaya?nama_biaya=SpP", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, res["total"])

	status, res = testutil.Do(t, app, http.MethodGet, "/api/masterbiaya?nama_biaya=gedung&jenis_biaya=income", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, res["total"])
}

func TestMasterBiayaUpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	k := testutil.SeedKaryawan(t, db, "Bendahara")
	s := testutil.SeedSchool(t, db)
	mb := testutil.SeedMasterBiaya(t, db, "SPP", constants.JenisPemasukan, "150000")
	path := fmt.Sprintf("/api/masterbiaya/%d", mb.BiayaID)

	status, res := testutil.Do(t, app, http.MethodPatch, path, map[string]any{"karyawan_id": k.KaryawanID, "deskripsi": "Bulanan"})
	require.Equal(t, http.StatusOK, status, res)
	data := testutil.Data(t, res)
	assert.Equal(t, "Bendahara", data["karyawan"].(map[string]any)["nama"])
	assert.Equal(t, "Bulanan", data["deskripsi"])
	assert.Equal(t, "SPP", data["nama_biaya"])

	status, res = testutil.Do(t, app, http.MethodPatch, path, map[string]any{"karyawan_id": nil, "deskripsi": nil})
	require.Equal(t, http.StatusOK, status, res)
	data = testutil.Data(t, res)
	assert.Nil(t, data["karyawan_id"])
	assert.Nil(t, data["deskripsi"])

	testutil.SeedTagihan(t, db, s.SiswaID, mb.BiayaID, "150000", constants.StatusBelumLunas)
	status, res = testutil.Do(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Master biaya masih dipakai oleh tagihan atau pengeluaran", res["message"])

	// penanggung jawab dihapus → karyawan_id jadi NULL
	kb := testutil.SeedMasterBiaya(t, db, "Kebersihan", constants.JenisPengeluaran, "50000")
	tmp := testutil.SeedKaryawan(t, db, "Sementara")
	require.NoError(t, db.Table("tb_master_biaya").Where("biaya_id = ?", kb.BiayaID).Update("karyawan_id", tmp.KaryawanID).Error)
	require.NoError(t, db.Delete(tmp).Error)
	status, res = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/masterbiaya/%d", kb.BiayaID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, testutil.Data(t, res)["karyawan_id"])
}
