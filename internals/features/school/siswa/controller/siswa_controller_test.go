package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"sekolah_backend/internals/constants"
	orangTua "sekolah_backend/internals/features/school/orang_tua/model"
	"sekolah_backend/internals/features/school/siswa/route"
	user "sekolah_backend/internals/features/users/user/model"
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
	route.SiswaRoutes(api, db, authMiddleware.AdminOnly())
	return app
}

func TestCreateSiswa(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	wali := testutil.SeedKaryawan(t, db, "Budi")
	k := testutil.SeedKelas(t, db, "7A", wali.KaryawanID)
	ortu := testutil.SeedOrangTua(t, db, "Ahmad", "Siti")

	body := map[string]any{
		"nama":      "Aisyah",
		"tgl_lahir": "2012-08-17",
		"jk":        "P",
		"alamat":    "Jl. Kenanga 2",
		"kelas_id":  k.KelasID,
		"ortu_id":   fmt.Sprint(ortu.OrtuID),
	}
	status, res := testutil.Do(t, app, http.MethodPost, "/api/siswa", body)
	require.Equal(t, http.StatusCreated, status, res)
	data := testutil.Data(t, res)
	assert.Equal(t, "7A", data["kelas"].(map[string]any)["nama_kelas"])
	assert.Equal(t, "Ahmad", data["orang_tua"].(map[string]any)["nama_ayah"])

	for _, field := range []string{"kelas_id", "ortu_id"} {
		b := map[string]any{}
		for k, v := range body {
			b[k] = v
		}
		b[field] = 9999
		status, res = testutil.Do(t, app, http.MethodPost, "/api/siswa", b)
		assert.Equal(t, http.StatusBadRequest, status, field)
		assert.Equal(t, "REFERENCE_NOT_FOUND", res["error_code"], field)
		assert.Contains(t, res["errors"], field)
	}
}

func TestSiswaFiltersAndCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	wali := testutil.SeedKaryawan(t, db, "Budi")
	k7 := testutil.SeedKelas(t, db, "7A", wali.KaryawanID)
	k8 := testutil.SeedKelas(t, db, "8A", wali.KaryawanID)
	o1 := testutil.SeedOrangTua(t, db, "Ahmad", "Siti")
	o2 := testutil.SeedOrangTua(t, db, "Rudi", "Rina")
	testutil.SeedSiswa(t, db, "Aisyah", k7.KelasID, o1.OrtuID)
	testutil.SeedSiswa(t, db, "Fatimah", k8.KelasID, o1.OrtuID)
	testutil.SeedSiswa(t, db, "Umar", k7.KelasID, o2.OrtuID)

	status, res := testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/siswa?ortu_id=%d", o1.OrtuID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, res["total"])

	status, res = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/siswa?kelas_id=%d&ortu_id=%d", k7.KelasID, o2.OrtuID), nil)
	require.Equal(t, http.StatusOK, status)
	rows := res["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Umar", rows[0].(map[string]any)["nama"])

	status, res = testutil.Do(t, app, http.MethodGet, "/api/siswa/count", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, res["total"])

	status, res = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/siswa/count?kelas_id=%d", k8.KelasID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, res["total"])

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/siswa?kelas_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSiswaShowsCurrentOrangTua(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	s := testutil.SeedSchool(t, db)

	require.NoError(t, db.Model(&orangTua.OrangTuaModel{}).
		Where("ortu_id = ?", s.OrtuID).Update("nama_ayah", "Ahmad Fauzi").Error)

	status, res := testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/siswa/%d", s.SiswaID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ahmad Fauzi", testutil.Data(t, res)["orang_tua"].(map[string]any)["nama_ayah"])

	status, res = testutil.Do(t, app, http.MethodPatch, fmt.Sprintf("/api/siswa/%d", s.SiswaID),
		map[string]any{"nama": "Aisyah Putri", "tgl_lahir": "2012-02-30"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FORMAT", res["error_code"])
}

func TestDeleteSiswa(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	s := testutil.SeedSchool(t, db)
	mb := testutil.SeedMasterBiaya(t, db, "SPP", constants.JenisPemasukan, "100000")
	testutil.SeedTagihan(t, db, s.SiswaID, mb.BiayaID, "100000", constants.StatusBelumLunas)

	status, res := testutil.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/siswa/%d", s.SiswaID), nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Siswa masih memiliki tagihan", res["message"])

	other := testutil.SeedSiswa(t, db, "Umar", s.KelasID, s.OrtuID)
	testutil.SeedUser(t, db, "umar", "rahasia123", constants.RoleSiswa, &other.SiswaID, nil, nil)

	status, _ = testutil.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/siswa/%d", other.SiswaID), nil)
	require.Equal(t, http.StatusOK, status)

	var n int64
	require.NoError(t, db.Model(&user.UserModel{}).Where("username = ?", "umar").Count(&n).Error)
	assert.Zero(t, n)
}
