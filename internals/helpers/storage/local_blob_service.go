package helper

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalBlobService menyimpan file di disk; folder yang sama disajikan di PublicPrefix.
type LocalBlobService struct {
	Dir    string
	Prefix string // contoh: "/document"
}

func NewLocalBlobService(dir, prefix string) (*LocalBlobService, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "public/document"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "buat folder %s", dir)
	}
	prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
	return &LocalBlobService{Dir: dir, Prefix: prefix}, nil
}

func (s *LocalBlobService) Put(ctx context.Context, key string, r io.Reader, _ string) error {
	if !validKey(key) {
		return errors.Errorf("key tidak valid: %q", key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := filepath.Join(s.Dir, key)
	tmp := dst + ".part"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "buka file tujuan")
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "tulis file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "tutup file")
	}
	return errors.Wrap(os.Rename(tmp, dst), "rename file")
}

// Delete: file yang sudah tidak ada dianggap sukses.
func (s *LocalBlobService) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return errors.Errorf("key tidak valid: %q", key)
	}
	err := os.Remove(filepath.Join(s.Dir, key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "hapus file")
	}
	return nil
}

func (s *LocalBlobService) List(ctx context.Context) ([]Object, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrap(err, "baca folder")
	}
	out := make([]Object, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || strings.HasSuffix(e.Name(), ".part") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Object{Key: e.Name(), Size: info.Size(), LastModified: info.ModTime()})
	}
	return out, nil
}

func (s *LocalBlobService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return s.Prefix + "/" + key
}
