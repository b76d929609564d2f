package dto

import (
	"strings"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/users/user/model"
	helper "sekolah_backend/internals/helpers"
)

// UserRequest: body POST /api/users
type UserRequest struct {
	Username   string        `json:"username" validate:"required,max=100"`
	Password   string        `json:"password" validate:"required,min=6,max=72"`
	Role       string        `json:"role" validate:"required"`
	SiswaID    *helper.RefID `json:"siswa_id"`
	OrtuID     *helper.RefID `json:"ortu_id"`
	KaryawanID *helper.RefID `json:"karyawan_id"`
}

func normalizeRole(s string) string {
	if r, ok := constants.ParseRole(s); ok {
		return string(r)
	}
	return strings.TrimSpace(s)
}

func (r *UserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Role = normalizeRole(r.Role)
}

func (r UserRequest) Binding() (model.RoleBinding, error) {
	return model.NewRoleBinding(constants.Role(r.Role), refPtr(r.SiswaID), refPtr(r.OrtuID), refPtr(r.KaryawanID))
}

// refPtr: nil & 0 sama-sama dianggap tidak diisi.
func refPtr(r *helper.RefID) *uint {
	if r == nil {
		return nil
	}
	return r.Ptr()
}

func refOf(p *uint) *helper.RefID {
	if p == nil {
		return nil
	}
	r := helper.RefID(*p)
	return &r
}

// UserUpdateRequest: hasil merge patch ke baris tersimpan. Password kosong = tidak diganti.
type UserUpdateRequest struct {
	Username   string        `json:"username" validate:"required,max=100"`
	Password   string        `json:"password" validate:"omitempty,min=6,max=72"`
	Role       string        `json:"role" validate:"required"`
	SiswaID    *helper.RefID `json:"siswa_id"`
	OrtuID     *helper.RefID `json:"ortu_id"`
	KaryawanID *helper.RefID `json:"karyawan_id"`
}

func (r *UserUpdateRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Role = normalizeRole(r.Role)
}

func (r UserUpdateRequest) Binding() (model.RoleBinding, error) {
	return model.NewRoleBinding(constants.Role(r.Role), refPtr(r.SiswaID), refPtr(r.OrtuID), refPtr(r.KaryawanID))
}

func FromUserModel(m model.UserModel) UserUpdateRequest {
	return UserUpdateRequest{
		Username:   m.Username,
		Role:       string(m.Role),
		SiswaID:    refOf(m.SiswaID),
		OrtuID:     refOf(m.OrtuID),
		KaryawanID: refOf(m.KaryawanID),
	}
}

type UserPatch struct {
	Username   helper.PatchField[string]       `json:"username"`
	Password   helper.PatchField[string]       `json:"password"`
	Role       helper.PatchField[string]       `json:"role"`
	SiswaID    helper.PatchField[helper.RefID] `json:"siswa_id"`
	OrtuID     helper.PatchField[helper.RefID] `json:"ortu_id"`
	KaryawanID helper.PatchField[helper.RefID] `json:"karyawan_id"`
}

// CheckPassword: password boleh tidak dikirim, tapi kalau dikirim tidak boleh null/kosong.
func (p UserPatch) CheckPassword() error {
	if p.Password.Set && (p.Password.Value == nil || *p.Password.Value == "") {
		return helper.MissingField("password", "password wajib diisi")
	}
	return nil
}

// Merge: kalau role berubah, referensi profil yang tidak dikirim di-reset
// supaya profil role lama tidak ikut terbawa.
func (p UserPatch) Merge(base UserUpdateRequest) UserUpdateRequest {
	oldRole := base.Role
	p.Username.Apply(&base.Username)
	p.Password.Apply(&base.Password)
	p.Role.Apply(&base.Role)

	if p.Role.Set && normalizeRole(base.Role) != oldRole {
		base.SiswaID, base.OrtuID, base.KaryawanID = nil, nil, nil
	}
	p.SiswaID.ApplyPtr(&base.SiswaID)
	p.OrtuID.ApplyPtr(&base.OrtuID)
	p.KaryawanID.ApplyPtr(&base.KaryawanID)
	return base
}
