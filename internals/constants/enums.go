package constants

import "strings"

// Status tagihan
const (
	StatusLunas      = "lunas"
	StatusBelumLunas = "belum_lunas"
)

// Jenis biaya di master biaya
const (
	JenisPemasukan   = "pemasukan"
	JenisPengeluaran = "pengeluaran"
)

// Jenis kelamin
const (
	JKLaki      = "L"
	JKPerempuan = "P"
)

// Asal baris pemasukan
const (
	SumberManual   = "manual"
	SumberOtomatis = "otomatis"
	SumberMidtrans = "midtrans"
)

const DefaultMetodePembayaran = "Transfer Bank"

var (
	statusAliases = map[string]string{"paid": StatusLunas, "unpaid": StatusBelumLunas}
	jenisAliases  = map[string]string{"income": JenisPemasukan, "expenditure": JenisPengeluaran}
	jkAliases     = map[string]string{"M": JKLaki, "F": JKPerempuan}
)

// NormalizeStatus, NormalizeJenis, NormalizeJK hanya memetakan alias; nilai lain
// dikembalikan apa adanya supaya validator yang menolak.
func NormalizeStatus(s string) string { return normalize(strings.TrimSpace(s), statusAliases) }
func NormalizeJenis(s string) string  { return normalize(strings.TrimSpace(s), jenisAliases) }
func NormalizeJK(s string) string     { return normalize(strings.TrimSpace(s), jkAliases) }

func normalize(s string, aliases map[string]string) string {
	if v, ok := aliases[s]; ok {
		return v
	}
	return s
}
