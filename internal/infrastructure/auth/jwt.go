package authinfra

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verifier 驗證外部核發的 HS256 access token；本服務不簽發登入憑證。
type Verifier struct {
	secret []byte
}

// NewVerifier 以共享密鑰建立驗證器。
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Claims 定義 access token 的 payload。
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Verify 驗證 token 並回傳其使用者識別碼。
func (v *Verifier) Verify(token string) (uuid.UUID, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !tkn.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, errors.New("invalid uid claim")
	}
	return userID, nil
}

// Sign 以同一密鑰簽發 token，供本地工具與測試使用。
func Sign(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
