package helper

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"sekolah_backend/internals/constants"
	helper "sekolah_backend/internals/helpers"

	"github.com/gabriel-vasile/mimetype"
)

// Evidence: file bukti yang sudah lolos cek ukuran & tipe, siap disimpan.
type Evidence struct {
	Key         string
	ContentType string
	Size        int64
	Data        []byte
}

func (e *Evidence) Reader() io.Reader { return bytes.NewReader(e.Data) }

// CheckEvidence memvalidasi file upload: ukuran <= maxBytes, tipe (dari isi, bukan nama)
// ada di allowlist. Tidak ada yang ditulis kalau gagal.
func CheckEvidence(fh *multipart.FileHeader, maxBytes int64) (*Evidence, error) {
	if fh == nil {
		return nil, nil
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, &helper.AppError{
			Kind:    helper.KindFileTooLarge,
			Message: fmt.Sprintf("Ukuran file maksimal %d MB", maxBytes>>20),
			Fields:  map[string][]string{constants.EvidenceField: {"file terlalu besar"}},
		}
	}

	src, err := fh.Open()
	if err != nil {
		return nil, helper.Unexpected(err)
	}
	defer src.Close()

	limit := maxBytes
	if limit <= 0 {
		limit = fh.Size
	}
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return nil, helper.Unexpected(err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, &helper.AppError{
			Kind:    helper.KindFileTooLarge,
			Message: fmt.Sprintf("Ukuran file maksimal %d MB", maxBytes>>20),
			Fields:  map[string][]string{constants.EvidenceField: {"file terlalu besar"}},
		}
	}

	mime, ok := allowedMIME(mimetype.Detect(data))
	if !ok {
		return nil, &helper.AppError{
			Kind:    helper.KindUnsupportedFileType,
			Message: "Tipe file tidak didukung. Gunakan JPEG, PNG, PDF, DOC, atau DOCX",
			Fields:  map[string][]string{constants.EvidenceField: {"tipe file tidak didukung"}},
		}
	}

	return &Evidence{
		Key:         NewObjectKey(constants.ExtForMIME(mime, fh.Filename)),
		ContentType: mime,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// allowedMIME: cek hasil deteksi beserta parent-nya terhadap allowlist.
func allowedMIME(mt *mimetype.MIME) (string, bool) {
	for m := mt; m != nil; m = m.Parent() {
		for allowed := range constants.EvidenceMIMEs {
			if m.Is(allowed) {
				return allowed, true
			}
		}
	}
	return "", false
}
