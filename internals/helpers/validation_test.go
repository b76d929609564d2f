package helper_test

import (
	"testing"

	helper "sekolah_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Nama        string         `json:"nama" validate:"required,max=100"`
	Jumlah      helper.Nominal `json:"jumlah" validate:"required,nominal"`
	NoHP        string         `json:"no_hp" validate:"omitempty,telepon"`
	Tanggal     string         `json:"tanggal" validate:"omitempty,tanggal"`
	TahunAjaran string         `json:"tahun_ajaran" validate:"omitempty,tahun_ajaran"`
	JK          string         `json:"jk" validate:"omitempty,jk"`
}

func valid() sampleRequest {
	return sampleRequest{
		Nama:        "Aisyah",
		Jumlah:      "150000",
		NoHP:        "+6281234567890",
		Tanggal:     "2024-02-29",
		TahunAjaran: "2024/2025",
		JK:          "P",
	}
}

func TestValidateStructAccepts(t *testing.T) {
	assert.NoError(t, helper.ValidateStruct(valid()))

	r := valid()
	r.Jumlah = "0.01"
	assert.NoError(t, helper.ValidateStruct(r))
}

func TestValidateStructMissingWinsOverFormat(t *testing.T) {
	r := valid()
	r.Nama = ""
	r.Jumlah = ""
	r.JK = "X"

	err := helper.ValidateStruct(r)
	require.Error(t, err)
	assert.Equal(t, helper.KindMissingField, helper.KindOf(err))

	var ae *helper.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "jumlah, nama wajib diisi", ae.Message)
	assert.Contains(t, ae.Fields, "nama")
	assert.Contains(t, ae.Fields, "jumlah")
	assert.NotContains(t, ae.Fields, "jk")
}

func TestValidateStructFormats(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*sampleRequest)
		field string
	}{
		{"jumlah nol", func(r *sampleRequest) { r.Jumlah = "0" }, "jumlah"},
		{"jumlah negatif", func(r *sampleRequest) { r.Jumlah = "-1" }, "jumlah"},
		{"jumlah tiga desimal", func(r *sampleRequest) { r.Jumlah = "1.001" }, "jumlah"},
		{"jumlah bukan angka", func(r *sampleRequest) { r.Jumlah = "seratus" }, "jumlah"},
		{"jumlah melebihi numeric(12,2)", func(r *sampleRequest) { r.Jumlah = "10000000000" }, "jumlah"},
		{"telepon pendek", func(r *sampleRequest) { r.NoHP = "0812" }, "no_hp"},
		{"tanggal kalender salah", func(r *sampleRequest) { r.Tanggal = "2023-02-29" }, "tanggal"},
		{"tanggal format lain", func(r *sampleRequest) { r.Tanggal = "29/02/2024" }, "tanggal"},
		{"tahun ajaran", func(r *sampleRequest) { r.TahunAjaran = "2024-2025" }, "tahun_ajaran"},
		{"jenis kelamin", func(r *sampleRequest) { r.JK = "X" }, "jk"},
		{"nama terlalu panjang", func(r *sampleRequest) { r.Nama = string(make([]byte, 101)) }, "nama"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid()
			tc.mut(&r)
			err := helper.ValidateStruct(r)
			require.Error(t, err)
			assert.Equal(t, helper.KindInvalidFormat, helper.KindOf(err))

			var ae *helper.AppError
			require.ErrorAs(t, err, &ae)
			assert.Contains(t, ae.Fields, tc.field)
			assert.NotEmpty(t, ae.Message)
		})
	}
}

func TestIsDate(t *testing.T) {
	assert.True(t, helper.IsDate("2024-12-31"))
	assert.False(t, helper.IsDate("2024-13-01"))
	assert.False(t, helper.IsDate("2024-1-01"))
	assert.False(t, helper.IsDate(""))
}
