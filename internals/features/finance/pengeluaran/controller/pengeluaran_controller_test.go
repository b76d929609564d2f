package controller_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/finance/pengeluaran/model"
	"sekolah_backend/internals/features/finance/pengeluaran/route"
	user "sekolah_backend/internals/features/users/user/model"
	helperStorage "sekolah_backend/internals/helpers/storage"
	"sekolah_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	pdfBytes = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
)

const maxUpload = 4 << 10

type fixture struct {
	app   *fiber.App
	db    *gorm.DB
	dir   string
	guru  *user.UserModel
	admin *user.UserModel
	atkID uint
	sppID uint
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	blob, err := helperStorage.NewLocalBlobService(dir, "/document")
	require.NoError(t, err)

	app, api := testutil.NewAPI(testutil.Guru())
	route.PengeluaranRoutes(api, db, blob, maxUpload)

	k := testutil.SeedKaryawan(t, db, "Budi Santoso")
	return fixture{
		app:   app,
		db:    db,
		dir:   dir,
		guru:  testutil.SeedUser(t, db, "budi", "rahasia", constants.RoleGuru, nil, nil, &k.KaryawanID),
		admin: testutil.SeedUser(t, db, "admin", "rahasia", constants.RoleAdmin, nil, nil, nil),
		atkID: testutil.SeedMasterBiaya(t, db, "ATK", constants.JenisPengeluaran, "50000").BiayaID,
		sppID: testutil.SeedMasterBiaya(t, db, "SPP", constants.JenisPemasukan, "150000").BiayaID,
	}
}

// multipartReq membangun request form-data; file boleh nil.
func multipartReq(t *testing.T, method, path string, fields map[string]string, filename string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		part, err := w.CreateFormFile(constants.EvidenceField, filename)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func (f fixture) form(biayaID, userID uint) map[string]string {
	return map[string]string{
		"deskripsi":       "Beli spidol",
		"jumlah":          "45000.50",
		"tgl_pengeluaran": "2025-07-05",
		"biaya_id":        fmt.Sprint(biayaID),
		"user_id":         fmt.Sprint(userID),
	}
}

func (f fixture) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func (f fixture) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.PengeluaranModel{}).Count(&n).Error)
	return n
}

func TestCreatePengeluaranWithEvidence(t *testing.T) {
	f := setup(t)

	status, res := testutil.Send(t, f.app, multipartReq(t, http.MethodPost, "/api/pengeluaran",
		f.form(f.atkID, f.guru.UserID), "nota.png", pngBytes))
	require.Equal(t, http.StatusCreated, status, res)

	data := testutil.Data(t, res)
	key, _ := data["bukti_pengeluaran"].(string)
	require.NotEmpty(t, key)
	assert.Equal(t, ".png", filepath.Ext(key))
	assert.Equal(t, "/document/"+key, data["bukti_url"])
	assert.EqualValues(t, 45000.5, data["jumlah"])
	assert.Equal(t, "2025-07-05", data["tgl_pengeluaran"])
	assert.Equal(t, "Budi Santoso", data["user"].(map[string]any)["karyawan"].(map[string]any)["nama"])
	assert.Equal(t, []string{key}, f.files(t))

	// tanpa file juga boleh
	status, res = testutil.Send(t, f.app, multipartReq(t, http.MethodPost, "/api/pengeluaran",
		f.form(f.atkID, f.guru.UserID), "", nil))
	require.Equal(t, http.StatusCreated, status, res)
	assert.Nil(t, testutil.Data(t, res)["bukti_pengeluaran"])
	assert.Len(t, f.files(t), 1)
}

func TestCreatePengeluaranRejects(t *testing.T) {
	f := setup(t)
	big := append(append([]byte{}, pngBytes...), make([]byte, maxUpload)...)

	cases := []struct {
		name     string
		fields   map[string]string
		filename string
		file     []byte
		code     string
		message  string
	}{
		{"biaya jenis pemasukan", f.form(f.sppID, f.guru.UserID), "nota.pdf", pdfBytes, "REFERENCE_NOT_FOUND", "biaya_id tidak valid atau bukan tipe pengeluaran"},
		{"biaya tidak ada", f.form(999, f.guru.UserID), "", nil, "REFERENCE_NOT_FOUND", "biaya_id tidak valid atau bukan tipe pengeluaran"},
		{"user tanpa karyawan", f.form(f.atkID, f.admin.UserID), "nota.pdf", pdfBytes, "REFERENCE_NOT_FOUND", "User (guru) tidak valid"},
		{"user tidak ada", f.form(f.atkID, 999), "", nil, "REFERENCE_NOT_FOUND", "User (guru) tidak valid"},
		{"tipe file", f.form(f.atkID, f.guru.UserID), "nota.png", []byte("hanya teks biasa"), "UNSUPPORTED_FILE_TYPE", ""},
		{"file terlalu besar", f.form(f.atkID, f.guru.UserID), "nota.png", big, "FILE_TOO_LARGE", ""},
		{"wajib sebelum file", map[string]string{"deskripsi": "x"}, "nota.png", []byte("teks"), "MISSING_FIELD", ""},
		{"id bukan angka", map[string]string{"biaya_id": "abc"}, "", nil, "INVALID_FORMAT", "biaya_id tidak valid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, res := testutil.Send(t, f.app, multipartReq(t, http.MethodPost, "/api/pengeluaran",
				tc.fields, tc.filename, tc.file))
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.code, res["error_code"])
			if tc.message != "" {
				assert.Equal(t, tc.message, res["message"])
			}
		})
	}

	assert.Zero(t, f.count(t))
	// file yang sempat ditulis dihapus lagi saat transaksi gagal
	assert.Empty(t, f.files(t))
}

func TestUpdatePengeluaranReplacesEvidence(t *testing.T) {
	f := setup(t)

	_, res := testutil.Send(t, f.app, multipartReq(t, http.MethodPost, "/api/pengeluaran",
		f.form(f.atkID, f.guru.UserID), "nota.png", pngBytes))
	created := testutil.Data(t, res)
	id := uint(created["pengeluaran_id"].(float64))
	oldKey := created["bukti_pengeluaran"].(string)
	path := fmt.Sprintf("/api/pengeluaran/%d", id)

	// JSON biasa: bukti tidak berubah
	status, res := testutil.Do(t, f.app, http.MethodPatch, path, map[string]any{"deskripsi": "Beli kertas"})
	require.Equal(t, http.StatusOK, status, res)
	data := testutil.Data(t, res)
	assert.Equal(t, "Beli kertas", data["deskripsi"])
	assert.EqualValues(t, 45000.5, data["jumlah"])
	assert.Equal(t, oldKey, data["bukti_pengeluaran"])

	// ganti file: file lama hilang setelah commit
	status, res = testutil.Send(t, f.app, multipartReq(t, http.MethodPatch, path,
		map[string]string{"jumlah": "60000"}, "nota.pdf", pdfBytes))
	require.Equal(t, http.StatusOK, status, res)
	data = testutil.Data(t, res)
	newKey := data["bukti_pengeluaran"].(string)
	assert.NotEqual(t, oldKey, newKey)
	assert.Equal(t, ".pdf", filepath.Ext(newKey))
	assert.EqualValues(t, 60000, data["jumlah"])
	assert.Equal(t, []string{newKey}, f.files(t))

	// update gagal: file baru dibuang, file lama tetap
	status, res = testutil.Send(t, f.app, multipartReq(t, http.MethodPatch, path,
		map[string]string{"biaya_id": fmt.Sprint(f.sppID)}, "nota.png", pngBytes))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "REFERENCE_NOT_FOUND", res["error_code"])
	assert.Equal(t, []string{newKey}, f.files(t))

	status, _ = testutil.Do(t, f.app, http.MethodPatch, "/api/pengeluaran/999", map[string]any{"deskripsi": "x"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = testutil.Do(t, f.app, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, f.files(t))
	assert.Zero(t, f.count(t))

	status, res = testutil.Do(t, f.app, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Pengeluaran tidak ditemukan", res["message"])
}

func TestPengeluaranListAndTotal(t *testing.T) {
	f := setup(t)
	transport := testutil.SeedMasterBiaya(t, f.db, "Transport", constants.JenisPengeluaran, "20000").BiayaID

	for _, row := range []struct {
		biaya  uint
		jumlah string
	}{{f.atkID, "45000.50"}, {f.atkID, "10000"}, {transport, "20000.25"}} {
		fields := f.form(row.biaya, f.guru.UserID)
		fields["jumlah"] = row.jumlah
		status, res := testutil.Send(t, f.app, multipartReq(t, http.MethodPost, "/api/pengeluaran", fields, "", nil))
		require.Equal(t, http.StatusCreated, status, res)
	}

	status, res := testutil.Do(t, f.app, http.MethodGet, "/api/pengeluaran/total", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 75000.75, res["total"])

	status, res = testutil.Do(t, f.app, http.MethodGet, fmt.Sprintf("/api/pengeluaran/total?biaya_id=%d", f.atkID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 55000.5, res["total"])

	status, res = testutil.Do(t, f.app, http.MethodGet, fmt.Sprintf("/api/pengeluaran?biaya_id=%d", transport), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, res["total"])
	rows := res["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Transport", rows[0].(map[string]any)["master_biaya"].(map[string]any)["nama_biaya"])

	status, res = testutil.Do(t, f.app, http.MethodGet, "/api/pengeluaran?biaya_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FORMAT", res["error_code"])
}
