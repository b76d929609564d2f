package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"sekolah_backend/internals/configs"
	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/finance/pengeluaran/model"
	"sekolah_backend/internals/helpers/dbtime"
	helperStorage "sekolah_backend/internals/helpers/storage"
	"sekolah_backend/internals/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2025, 7, 10, 3, 0, 0, 0, time.UTC)

// writeFile membuat file bukti dengan umur tertentu.
func writeFile(t *testing.T, dir, key string, age time.Duration) {
	t.Helper()
	p := filepath.Join(dir, key)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	mt := now.Add(-age)
	require.NoError(t, os.Chtimes(p, mt, mt))
}

func seedExpense(t *testing.T, db *gorm.DB, key string) {
	t.Helper()
	k := testutil.SeedKaryawan(t, db, "Budi Santoso")
	u := testutil.SeedUser(t, db, "budi", "rahasia", constants.RoleGuru, nil, nil, &k.KaryawanID)
	mb := testutil.SeedMasterBiaya(t, db, "ATK", constants.JenisPengeluaran, "50000")
	tgl, err := dbtime.ParseDate("2025-07-05")
	require.NoError(t, err)
	require.NoError(t, db.Omit("Biaya", "User").Create(&model.PengeluaranModel{
		Deskripsi:        "Beli spidol",
		Jumlah:           decimal.NewFromInt(45000),
		TglPengeluaran:   tgl,
		BuktiPengeluaran: &key,
		BiayaID:          mb.BiayaID,
		UserID:           u.UserID,
	}).Error)
}

func newReaper(t *testing.T, dryRun bool) (*EvidenceReaper, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	blob, err := helperStorage.NewLocalBlobService(dir, "/document")
	require.NoError(t, err)

	r := NewEvidenceReaper(db, blob, configs.ReaperConfig{Retention: 24 * time.Hour, DryRun: dryRun})
	r.Now = func() time.Time { return now }

	seedExpense(t, db, "dipakai.pdf")
	writeFile(t, dir, "dipakai.pdf", 72*time.Hour)
	writeFile(t, dir, "yatim.png", 48*time.Hour)
	writeFile(t, dir, "baru.png", time.Hour)
	return r, dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func TestEvidenceReaperDeletesOnlyOldOrphans(t *testing.T) {
	r, dir := newReaper(t, false)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, []string{"yatim.png"}, res.Deleted)
	assert.Equal(t, []string{"baru.png", "dipakai.pdf"}, listDir(t, dir))

	// putaran kedua tidak menemukan apa-apa
	res, err = r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Deleted)
}

func TestEvidenceReaperDryRun(t *testing.T) {
	r, dir := newReaper(t, true)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"yatim.png"}, res.Deleted)
	assert.Equal(t, []string{"baru.png", "dipakai.pdf", "yatim.png"}, listDir(t, dir))
}

func TestEvidenceReaperStartRejectsBadSchedule(t *testing.T) {
	r, _ := newReaper(t, true)

	_, err := r.Start("bukan jadwal")
	assert.Error(t, err)

	c, err := r.Start("")
	require.NoError(t, err)
	<-c.Stop().Done()
}

func TestNewEvidenceReaperDefaults(t *testing.T) {
	r := NewEvidenceReaper(nil, nil, configs.ReaperConfig{})
	assert.Equal(t, defaultRetention, r.Retention)
	assert.False(t, r.DryRun)
}
