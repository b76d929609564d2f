package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"sekolah_backend/internals/constants"

	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	idTrans "github.com/go-playground/validator/v10/translations/id"
	"github.com/shopspring/decimal"
)

var (
	phoneRe       = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	dateRe        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	tahunAjaranRe = regexp.MustCompile(`^\d{4}/\d{4}$`)

	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate, trans = newValidator()
}

func newValidator() (*validator.Validate, ut.Translator) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("nominal", isNominal)
	_ = v.RegisterValidation("telepon", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("tanggal", func(fl validator.FieldLevel) bool {
		return IsDate(fl.Field().String())
	})
	_ = v.RegisterValidation("tahun_ajaran", func(fl validator.FieldLevel) bool {
		return tahunAjaranRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("jk", func(fl validator.FieldLevel) bool {
		jk := fl.Field().String()
		return jk == constants.JKLaki || jk == constants.JKPerempuan
	})

	locale := id.New()
	uni := ut.New(locale, locale)
	tr, _ := uni.GetTranslator("id")
	_ = idTrans.RegisterDefaultTranslations(v, tr)

	addTranslation(v, tr, "nominal", "{0} harus berupa angka positif (maks. 2 desimal)")
	addTranslation(v, tr, "telepon", "Nomor telepon {0} tidak valid")
	addTranslation(v, tr, "tanggal", "Format {0} harus YYYY-MM-DD")
	addTranslation(v, tr, "tahun_ajaran", `Format {0} harus seperti "2023/2024"`)
	addTranslation(v, tr, "jk", "{0} harus L atau P")
	return v, tr
}

func addTranslation(v *validator.Validate, tr ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, tr,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

var maxNominal = decimal.New(1, 10) // numeric(12,2)

// isNominal: angka desimal > 0, maksimal 2 digit di belakang koma.
func isNominal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil || !d.IsPositive() || d.GreaterThanOrEqual(maxNominal) {
		return false
	}
	return d.Equal(d.Round(2))
}

// IsDate: pola YYYY-MM-DD dan tanggal kalender yang benar.
func IsDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidateStruct menjalankan tag validate. Field wajib yang kosong dilaporkan lebih dulu
// (MissingField); kalau semua ada, pelanggaran format dilaporkan (InvalidFormat).
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Unexpected(err)
	}

	missing := map[string][]string{}
	invalid := map[string][]string{}
	firstInvalid := ""
	for _, fe := range ve {
		msg := fe.Translate(trans)
		if fe.Tag() == "required" {
			missing[fe.Field()] = append(missing[fe.Field()], msg)
			continue
		}
		if firstInvalid == "" {
			firstInvalid = msg
		}
		invalid[fe.Field()] = append(invalid[fe.Field()], msg)
	}
	if len(missing) > 0 {
		return &AppError{Kind: KindMissingField, Message: missingMessage(missing), Fields: missing}
	}
	return &AppError{Kind: KindInvalidFormat, Message: firstInvalid, Fields: invalid}
}
