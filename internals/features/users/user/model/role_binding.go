package model

import (
	"fmt"

	"sekolah_backend/internals/constants"
	helper "sekolah_backend/internals/helpers"
)

// Nama kolom referensi profil
const (
	FieldSiswaID    = "siswa_id"
	FieldOrtuID     = "ortu_id"
	FieldKaryawanID = "karyawan_id"
)

// profileField: kolom profil yang wajib untuk role; "" = tanpa profil.
var profileField = map[constants.Role]string{
	constants.RoleAdmin:    "",
	constants.RoleKepsek:   "",
	constants.RoleGuru:     FieldKaryawanID,
	constants.RoleOrangTua: FieldOrtuID,
	constants.RoleSiswa:    FieldSiswaID,
}

// RoleBinding: pasangan role + maksimal satu referensi profil yang cocok dengan role.
// Hanya bisa dibuat lewat NewRoleBinding.
type RoleBinding struct {
	role      constants.Role
	field     string
	profileID uint
}

// NewRoleBinding menolak kombinasi yang tidak konsisten:
//   - referensi profil milik role lain terisi → InvalidFormat
//   - referensi yang diwajibkan role kosong → MissingField
func NewRoleBinding(role constants.Role, siswaID, ortuID, karyawanID *uint) (RoleBinding, error) {
	want, ok := profileField[role]
	if !ok {
		return RoleBinding{}, helper.InvalidFormat("role",
			fmt.Sprintf("Role tidak valid. Harus salah satu dari: %v", constants.RoleNames()))
	}

	refs := []struct {
		field string
		id    *uint
	}{
		{FieldSiswaID, siswaID},
		{FieldOrtuID, ortuID},
		{FieldKaryawanID, karyawanID},
	}

	var id uint
	for _, r := range refs {
		if r.field == want {
			if r.id != nil {
				id = *r.id
			}
			continue
		}
		if r.id != nil {
			return RoleBinding{}, helper.InvalidFormat(r.field,
				fmt.Sprintf("%s tidak boleh diisi untuk role %s", r.field, role))
		}
	}
	if want != "" && id == 0 {
		return RoleBinding{}, helper.MissingField(want,
			fmt.Sprintf("%s diperlukan untuk role %s", want, role))
	}
	return RoleBinding{role: role, field: want, profileID: id}, nil
}

func (b RoleBinding) Role() constants.Role { return b.role }

// ProfileField: "" untuk admin/kepsek.
func (b RoleBinding) ProfileField() string { return b.field }

func (b RoleBinding) ProfileID() (uint, bool) { return b.profileID, b.field != "" }

func (b RoleBinding) SiswaID() *uint    { return b.ref(FieldSiswaID) }
func (b RoleBinding) OrtuID() *uint     { return b.ref(FieldOrtuID) }
func (b RoleBinding) KaryawanID() *uint { return b.ref(FieldKaryawanID) }

func (b RoleBinding) ref(field string) *uint {
	if b.field != field {
		return nil
	}
	id := b.profileID
	return &id
}
