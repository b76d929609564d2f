package helper

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"sekolah_backend/internals/configs"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

// OSSBlobService: implementasi BlobService berbasis Aliyun OSS.
type OSSBlobService struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // contoh: "document"
	PublicBase string
}

func NewOSSBlobService(cfg configs.OSSConfig) (*OSSBlobService, error) {
	endpoint := normalizeEndpoint(cfg.Endpoint)
	if endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.Bucket == "" {
		return nil, errors.New("konfigurasi ALI_OSS_* tidak lengkap")
	}

	client, err := oss.New(endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "oss.New")
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "client.Bucket")
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			log.Printf("[OSS] warn: skip location check (bucket=%s): %s", cfg.Bucket, se.Code)
		} else {
			return nil, errors.Wrap(err, "verify bucket")
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", cfg.Bucket, loc)
	}

	return &OSSBlobService{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: cfg.Bucket,
		Prefix:     strings.Trim(cfg.Prefix, "/"),
		PublicBase: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
	}, nil
}

func (s *OSSBlobService) objectKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + key
}

func (s *OSSBlobService) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if !validKey(key) {
		return errors.Errorf("key tidak valid: %q", key)
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	return errors.Wrap(s.Bucket.PutObject(s.objectKey(key), r, opts...), "oss put")
}

func (s *OSSBlobService) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return errors.Errorf("key tidak valid: %q", key)
	}
	err := s.Bucket.DeleteObject(s.objectKey(key), oss.WithContext(ctx))
	if err != nil && !isNotFound(err) {
		return errors.Wrap(err, "oss delete")
	}
	return nil
}

// List: scan semua object di bawah prefix (pakai marker, 1000 per halaman).
func (s *OSSBlobService) List(ctx context.Context) ([]Object, error) {
	prefix := ""
	if s.Prefix != "" {
		prefix = s.Prefix + "/"
	}
	marker := oss.Marker("")
	var out []Object
	for {
		lor, err := s.Bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "oss list")
		}
		for _, obj := range lor.Objects {
			key := strings.TrimPrefix(obj.Key, prefix)
			if key == "" || strings.Contains(key, "/") {
				continue
			}
			out = append(out, Object{Key: key, Size: obj.Size, LastModified: obj.LastModified})
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}
	return out, nil
}

func (s *OSSBlobService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return s.PublicBase + "/" + s.objectKey(key)
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, s.objectKey(key))
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ""
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	return strings.TrimRight(ep, "/")
}

func isNotFound(err error) bool {
	var se oss.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == 404 || se.Code == "NoSuchKey"
	}
	return false
}
