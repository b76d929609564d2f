package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"sekolah_backend/internals/configs"
	"sekolah_backend/internals/constants"
	user "sekolah_backend/internals/features/users/user/model"
	helper "sekolah_backend/internals/helpers"
	helperAuth "sekolah_backend/internals/helpers/auth"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const DefaultTokenTTL = 24 * time.Hour

// Claims: payload token = {user_id, role} + exp/iat.
type Claims struct {
	UserID uint           `json:"user_id"`
	Role   constants.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService: issue/verify token HS256. Stateless, tidak ada tabel sesi.
type TokenService struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenService(db *gorm.DB, cfg configs.AuthConfig) *TokenService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{DB: db, Secret: []byte(cfg.JWTSecret), TTL: ttl, Now: time.Now}
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type LoginResult struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	User      *helperAuth.Identity `json:"data"`
}

// Issue: username tidak ada & password salah menghasilkan error yang identik.
func (s *TokenService) Issue(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if err := requireCredentials(username, password); err != nil {
		return nil, err
	}

	var u user.UserModel
	err := preloadProfile(s.DB.WithContext(ctx)).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		burnDummyCompare(password)
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, helper.Unexpected(err)
	}
	if !CheckPassword(u.Password, password) {
		return nil, invalidCredentials()
	}

	now := s.now()
	exp := now.Add(s.TTL)
	claims := Claims{
		UserID: u.UserID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return nil, helper.Unexpected(err)
	}
	return &LoginResult{Token: signed, ExpiresAt: exp, User: IdentityOf(u)}, nil
}

// Verify: kadaluarsa dicek lebih dulu, jadi token expired selalu TokenExpired
// walaupun signature-nya juga rusak.
func (s *TokenService) Verify(ctx context.Context, raw string) (*helperAuth.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithoutClaimsValidation(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if claims.ExpiresAt != nil && !claims.VerifyExpiresAt(s.now(), true) {
		return nil, helper.NewAppError(helper.KindTokenExpired, constants.MsgTokenExpired)
	}
	if err != nil || token == nil || !token.Valid || claims.ExpiresAt == nil || claims.UserID == 0 {
		return nil, &helper.AppError{Kind: helper.KindTokenInvalid, Message: constants.MsgTokenInvalid, Err: err}
	}

	var u user.UserModel
	err = preloadProfile(s.DB.WithContext(ctx)).First(&u, claims.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NewAppError(helper.KindAccountNotFound, constants.MsgAccountNotFound)
	}
	if err != nil {
		return nil, helper.Unexpected(err)
	}
	return IdentityOf(u), nil
}

// IdentityOf: user tanpa password + nama tampilan dari profil.
func IdentityOf(u user.UserModel) *helperAuth.Identity {
	return &helperAuth.Identity{
		UserID:      u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName(),
		Role:        u.Role,
		SiswaID:     u.SiswaID,
		OrtuID:      u.OrtuID,
		KaryawanID:  u.KaryawanID,
	}
}

func preloadProfile(db *gorm.DB) *gorm.DB {
	return db.Preload("Siswa").Preload("Ortu").Preload("Karyawan")
}

func invalidCredentials() error {
	return helper.NewAppError(helper.KindInvalidCredentials, constants.MsgInvalidCredentials)
}

func requireCredentials(username, password string) error {
	missing := map[string][]string{}
	if username == "" {
		missing["username"] = []string{"username wajib diisi"}
	}
	if password == "" {
		missing["password"] = []string{"password wajib diisi"}
	}
	if len(missing) == 0 {
		return nil
	}
	return &helper.AppError{Kind: helper.KindMissingField, Message: "Username dan password harus diisi", Fields: missing}
}
