package scheduler

import (
	"context"
	"log"
	"time"

	"sekolah_backend/internals/configs"
	"sekolah_backend/internals/features/finance/pengeluaran/model"
	helperStorage "sekolah_backend/internals/helpers/storage"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	defaultSchedule  = "15 2 * * *"
	defaultRetention = 24 * time.Hour
)

// EvidenceReaper menghapus file bukti yang tidak dirujuk pengeluaran mana pun.
// File yang lebih muda dari Retention dilewati (bisa jadi upload yang transaksinya belum commit).
type EvidenceReaper struct {
	DB        *gorm.DB
	Blob      helperStorage.BlobService
	Retention time.Duration
	DryRun    bool
	Now       func() time.Time
}

type ReapResult struct {
	Scanned int
	Deleted []string
}

func NewEvidenceReaper(db *gorm.DB, blob helperStorage.BlobService, cfg configs.ReaperConfig) *EvidenceReaper {
	retention := cfg.Retention
	if retention <= 0 {
		retention = defaultRetention
	}
	return &EvidenceReaper{DB: db, Blob: blob, Retention: retention, DryRun: cfg.DryRun, Now: time.Now}
}

func (r *EvidenceReaper) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run: satu putaran pembersihan.
func (r *EvidenceReaper) Run(ctx context.Context) (ReapResult, error) {
	var res ReapResult
	objects, err := r.Blob.List(ctx)
	if err != nil {
		return res, errors.Wrap(err, "list bukti")
	}
	res.Scanned = len(objects)

	var keys []string
	if err := r.DB.WithContext(ctx).Model(&model.PengeluaranModel{}).
		Where("bukti_pengeluaran IS NOT NULL AND bukti_pengeluaran <> ''").
		Pluck("bukti_pengeluaran", &keys).Error; err != nil {
		return res, errors.Wrap(err, "ambil bukti terpakai")
	}
	used := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		used[k] = struct{}{}
	}

	threshold := r.now().Add(-r.Retention)
	for _, obj := range objects {
		if _, ok := used[obj.Key]; ok || !obj.LastModified.Before(threshold) {
			continue
		}
		if r.DryRun {
			log.Printf("[EVIDENCE-REAPER] (dry-run) akan hapus %s", obj.Key)
			res.Deleted = append(res.Deleted, obj.Key)
			continue
		}
		if err := r.Blob.Delete(ctx, obj.Key); err != nil {
			log.Printf("[EVIDENCE-REAPER] hapus %s gagal: %v", obj.Key, err)
			continue
		}
		res.Deleted = append(res.Deleted, obj.Key)
	}
	return res, nil
}

// Start memasang job cron; panggil Stop() dari cron yang dikembalikan saat shutdown.
func (r *EvidenceReaper) Start(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = defaultSchedule
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		res, err := r.Run(ctx)
		if err != nil {
			log.Printf("[EVIDENCE-REAPER] error: %v", err)
			return
		}
		log.Printf("[EVIDENCE-REAPER] scanned=%d deleted=%d dryRun=%v", res.Scanned, len(res.Deleted), r.DryRun)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "jadwal reaper %q", schedule)
	}
	log.Printf("[EVIDENCE-REAPER] started schedule=%q retention=%s dryRun=%v", schedule, r.Retention, r.DryRun)
	c.Start()
	return c, nil
}
