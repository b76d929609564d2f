package helper

import (
	"context"
	"io"
	"strings"
	"time"

	"sekolah_backend/internals/configs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

/*
BlobService adalah facade simpan/hapus file yang seragam untuk controller.
Key yang dikembalikan disimpan di DB; URL publik dibangun ulang lewat PublicURL.
*/
type BlobService interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Object, error)
	PublicURL(key string) string
}

// Object: satu file yang tersimpan (dipakai reaper).
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// NewBlobService memilih driver dari STORAGE_DRIVER.
func NewBlobService(cfg configs.StorageConfig) (BlobService, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "local":
		return NewLocalBlobService(cfg.LocalDir, cfg.PublicPrefix)
	case "oss":
		return NewOSSBlobService(cfg.OSS)
	default:
		return nil, errors.Errorf("storage driver tidak dikenal: %q", cfg.Driver)
	}
}

// NewObjectKey: nama file acak + ekstensi hasil sniffing.
func NewObjectKey(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return time.Now().UTC().Format("20060102") + "-" + uuid.NewString() + ext
}

// validKey menolak path traversal / key kosong.
func validKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return false
	}
	return true
}
