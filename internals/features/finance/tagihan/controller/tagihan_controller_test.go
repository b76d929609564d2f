package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"sekolah_backend/internals/constants"
	pemasukan "sekolah_backend/internals/features/finance/pemasukan/model"
	"sekolah_backend/internals/features/finance/tagihan/route"
	"sekolah_backend/internals/features/finance/tagihan/service"
	"sekolah_backend/internals/helpers/dbtime"
	authMiddleware "sekolah_backend/internals/middlewares/auth"
	"sekolah_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const today = "2025-07-01"

func newApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	lc := &service.Lifecycle{Today: func() dbtime.Date { return dbtime.MustDate(today) }}
	app, api := testutil.NewAPI(testutil.Admin())
	route.TagihanRoutes(api, db, lc, authMiddleware.AdminOnly())
	return app
}

func incomes(t *testing.T, db *gorm.DB, tagihanID any) []pemasukan.PemasukanModel {
	t.Helper()
	var rows []pemasukan.PemasukanModel
	require.NoError(t, db.Where("tagihan_id = ?", tagihanID).Order("pemasukan_id").Find(&rows).Error)
	return rows
}

func TestBillingLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	s := testutil.SeedSchool(t, db)
	mb := testutil.SeedMasterBiaya(t, db, "SPP Juli", constants.JenisPemasukan, "150000")

	status, res := testutil.Do(t, app, http.MethodPost, "/api/tagihan", map[string]any{
		"siswa_id":        s.SiswaID,
		"biaya_id":        mb.BiayaID,
		"jumlah":          "150000",
		"tgl_jatuh_tempo": "2025-07-10",
		"status":          "belum_lunas",
	})
	require.Equal(t, http.StatusCreated, status, res)
	data := testutil.Data(t, res)
	id := uint(data["tagihan_id"].(float64))
	path := fmt.Sprintf("/api/tagihan/%d", id)
	assert.Equal(t, "7A", data["siswa"].(map[string]any)["kelas"].(map[string]any)["nama_kelas"])
	assert.Equal(t, "SPP Juli", data["master_biaya"].(map[string]any)["nama_biaya"])
	assert.Empty(t, incomes(t, db, id))

	// belum_lunas → lunas: satu pemasukan otomatis
	status, res = testutil.Do(t, app, http.MethodPatch, path, map[string]any{"status": "paid"})
	require.Equal(t, http.StatusOK, status, res)
	assert.Equal(t, "lunas", testutil.Data(t, res)["status"])
	rows := incomes(t, db, id)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].JumlahBayar.Equal(decimal.RequireFromString("150000")))
	assert.Equal(t, today, rows[0].TglBayar.String())
	assert.Equal(t, constants.DefaultMetodePembayaran, rows[0].MetodePembayaran)
	assert.Equal(t, constants.SumberOtomatis, rows[0].Sumber)
	require.NotNil(t, rows[0].Keterangan)
	assert.Equal(t, "(pemasukan) SPP Juli", *rows[0].Keterangan)

	// lunas → lunas tidak menambah pemasukan
	status, _ = testutil.Do(t, app, http.MethodPut, path, map[string]any{"status": "lunas", "tgl_jatuh_tempo": "2025-07-15"})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, incomes(t, db, id), 1)

	manual := pemasukan.PemasukanModel{
		TagihanID:        id,
		JumlahBayar:      decimal.RequireFromString("5000"),
		TglBayar:         dbtime.MustDate(today),
		MetodePembayaran: "Tunai",
		Sumber:           constants.SumberManual,
	}
	require.NoError(t, db.Omit("Tagihan").Create(&manual).Error)

	// lunas → belum_lunas: hanya pemasukan non-manual yang dihapus
	status, _ = testutil.Do(t, app, http.MethodPatch, path, map[string]any{"status": "unpaid"})
	require.Equal(t, http.StatusOK, status)
	rows = incomes(t, db, id)
	require.Len(t, rows, 1)
	assert.Equal(t, manual.PemasukanID, rows[0].PemasukanID)

	status, res = testutil.Do(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Tagihan masih memiliki pemasukan manual", res["message"])

	require.NoError(t, db.Delete(&manual).Error)
	status, _ = testutil.Do(t, app, http.MethodPatch, path, map[string]any{"status": "lunas"})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, incomes(t, db, id), 1)

	status, _ = testutil.Do(t, app, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, incomes(t, db, id))
	status, _ = testutil.Do(t, app, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateTagihanLunasRecordsIncome(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	s := testutil.SeedSchool(t, db)
	mb := testutil.SeedMasterBiaya(t, db, "Uang Gedung", constants.JenisPemasukan, "2000000")

	status, res := testutil.Do(t, app, http.MethodPost, "/api/tagihan", map[string]any{
		"siswa_id":        s.SiswaID,
		"biaya_id":        mb.BiayaID,
		"jumlah":          0.01,
		"tgl_jatuh_tempo": "2025-07-10",
		"status":          "lunas",
	})
	require.Equal(t, http.StatusCreated, status, res)
	rows := incomes(t, db, testutil.Data(t, res)["tagihan_id"])
	require.Len(t, rows, 1)
	assert.True(t, rows[0].JumlahBayar.Equal(decimal.RequireFromString("0.01")))
}

func TestCreateTagihanValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	s := testutil.SeedSchool(t, db)
	mb := testutil.SeedMasterBiaya(t, db, "SPP", constants.JenisPemasukan, "150000")

	base := func() map[string]any {
		return map[string]any{
			"siswa_id":        s.SiswaID,
			"biaya_id":        mb.BiayaID,
			"jumlah":          150000,
			"tgl_jatuh_tempo": "2025-07-10",
			"status":          "belum_lunas",
		}
	}
	cases := []struct {
		name string
		mut  func(map[string]any)
		code string
	}{
		{"tanpa status", func(b map[string]any) { delete(b, "status") }, "MISSING_FIELD"},
		{"status salah", func(b map[string]any) { b["status"] = "cicil" }, "INVALID_FORMAT"},
		{"jumlah nol", func(b map[string]any) { b["jumlah"] = 0 }, "INVALID_FORMAT"},
		{"jumlah negatif", func(b map[string]any) { b["jumlah"] = -1 }, "INVALID_FORMAT"},
		{"tanggal salah", func(b map[string]any) { b["tgl_jatuh_tempo"] = "2025-13-01" }, "INVALID_FORMAT"},
		{"siswa tidak ada", func(b map[string]any) { b["siswa_id"] = 9999 }, "REFERENCE_NOT_FOUND"},
		{"biaya tidak ada", func(b map[string]any) { b["biaya_id"] = 9999 }, "REFERENCE_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := base()
			tc.mut(b)
			status, res := testutil.Do(t, app, http.MethodPost, "/api/tagihan", b)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.code, res["error_code"])
		})
	}

	var n int64
	require.NoError(t, db.Table("tb_tagihan").Count(&n).Error)
	assert.Zero(t, n)
}

func TestListTagihanFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := newApp(t, db)
	s := testutil.SeedSchool(t, db)
	other := testutil.SeedSiswa(t, db, "Umar", s.KelasID, s.OrtuID)
	mb := testutil.SeedMasterBiaya(t, db, "SPP", constants.JenisPemasukan, "150000")
	testutil.SeedTagihan(t, db, s.SiswaID, mb.BiayaID, "150000", constants.StatusLunas)
	testutil.SeedTagihan(t, db, s.SiswaID, mb.BiayaID, "150000", constants.StatusBelumLunas)
	testutil.SeedTagihan(t, db, other.SiswaID, mb.BiayaID, "150000", constants.StatusBelumLunas)

	status, res := testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/tagihan?siswa_id=%d", s.SiswaID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, res["total"])

	status, res = testutil.Do(t, app, http.MethodGet, "/api/tagihan?status=unpaid", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, res["total"])

	status, res = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/tagihan?siswa_id=%d&status=lunas", s.SiswaID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, res["total"])

	status, res = testutil.Do(t, app, http.MethodGet, "/api/tagihan?status=cicil", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FORMAT", res["error_code"])
}
