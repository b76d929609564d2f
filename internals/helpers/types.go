package helper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// nominal dikirim ke klien sebagai angka, bukan string
	decimal.MarshalJSONWithoutQuotes = true
}

// Nominal menerima angka JSON atau string angka; validasi nilainya lewat tag "nominal".
type Nominal string

func (n *Nominal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*n = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = Nominal(strings.TrimSpace(str))
	default:
		*n = Nominal(s)
	}
	return nil
}

func (n Nominal) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func NominalOf(d decimal.Decimal) Nominal { return Nominal(d.String()) }

// RefID: id referensi dari form/JSON, boleh angka atau string angka.
type RefID uint

func (r *RefID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*r = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*r = RefID(n)
	return nil
}

func (r RefID) Uint() uint { return uint(r) }

// Ptr: nil kalau 0 (untuk kolom FK nullable)
func (r RefID) Ptr() *uint {
	if r == 0 {
		return nil
	}
	v := uint(r)
	return &v
}

func RefIDOf(p *uint) RefID {
	if p == nil {
		return 0
	}
	return RefID(*p)
}

// ParseRefID untuk nilai form multipart / query.
func ParseRefID(s string) (RefID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return RefID(n), true
}
