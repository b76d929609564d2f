package model

import (
	"testing"

	"sekolah_backend/internals/constants"
	helper "sekolah_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint) *uint { return &v }

func TestNewRoleBinding_Valid(t *testing.T) {
	cases := []struct {
		name      string
		role      constants.Role
		s, o, k   *uint
		wantField string
		wantID    uint
	}{
		{"admin tanpa profil", constants.RoleAdmin, nil, nil, nil, "", 0},
		{"kepsek tanpa profil", constants.RoleKepsek, nil, nil, nil, "", 0},
		{"siswa", constants.RoleSiswa, ptr(3), nil, nil, FieldSiswaID, 3},
		{"orang tua", constants.RoleOrangTua, nil, ptr(4), nil, FieldOrtuID, 4},
		{"guru", constants.RoleGuru, nil, nil, ptr(5), FieldKaryawanID, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewRoleBinding(tc.role, tc.s, tc.o, tc.k)
			require.NoError(t, err)
			assert.Equal(t, tc.role, b.Role())
			assert.Equal(t, tc.wantField, b.ProfileField())
			id, has := b.ProfileID()
			assert.Equal(t, tc.wantField != "", has)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestNewRoleBinding_ExactlyOneRef(t *testing.T) {
	b, err := NewRoleBinding(constants.RoleGuru, nil, nil, ptr(9))
	require.NoError(t, err)

	var u UserModel
	u.Bind(b)
	assert.Nil(t, u.SiswaID)
	assert.Nil(t, u.OrtuID)
	require.NotNil(t, u.KaryawanID)
	assert.Equal(t, uint(9), *u.KaryawanID)

	again, err := u.Binding()
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestNewRoleBinding_MissingRequiredRef(t *testing.T) {
	_, err := NewRoleBinding(constants.RoleSiswa, nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, helper.KindMissingField, helper.KindOf(err))

	_, err = NewRoleBinding(constants.RoleOrangTua, nil, ptr(0), nil)
	assert.Equal(t, helper.KindMissingField, helper.KindOf(err))
}

func TestNewRoleBinding_ForeignRefRejected(t *testing.T) {
	_, err := NewRoleBinding(constants.RoleAdmin, ptr(1), nil, nil)
	require.Error(t, err)
	assert.Equal(t, helper.KindInvalidFormat, helper.KindOf(err))

	_, err = NewRoleBinding(constants.RoleSiswa, ptr(1), ptr(2), nil)
	require.Error(t, err)
	var ae *helper.AppError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, FieldOrtuID)
}

func TestNewRoleBinding_UnknownRole(t *testing.T) {
	_, err := NewRoleBinding(constants.Role("superuser"), nil, nil, nil)
	assert.Equal(t, helper.KindInvalidFormat, helper.KindOf(err))
}

func TestUserModel_DisplayName(t *testing.T) {
	u := UserModel{Username: "admin1", Role: constants.RoleAdmin}
	assert.Equal(t, "admin1", u.DisplayName())

	u = UserModel{Username: "kepsek", Role: constants.RoleKepsek}
	assert.Equal(t, "kepsek", u.DisplayName())
}
