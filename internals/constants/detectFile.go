package constants

import (
	"path/filepath"
	"strings"
)

// MIME yang boleh dipakai sebagai bukti pengeluaran
var EvidenceMIMEs = map[string]string{
	"image/jpeg":         ".jpg",
	"image/png":          ".png",
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

const EvidenceField = "bukti_pengeluaran"

// ExtForMIME memilih ekstensi dari MIME yang lolos sniffing; fallback ke ekstensi asli.
func ExtForMIME(mime, filename string) string {
	if ext, ok := EvidenceMIMEs[mime]; ok {
		return ext
	}
	return strings.ToLower(filepath.Ext(filename))
}
