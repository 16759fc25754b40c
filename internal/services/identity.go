package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity 调用方身份，来自 bearer token
type Identity struct {
	UserID uint
	OrgID  uint
}

type tokenClaims struct {
	Org string `json:"org"`
	jwt.RegisteredClaims
}

// TokenResolver 校验 HS256 JWT 并取出 sub(user id) / org(organisation id)
type TokenResolver struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenResolver(secret, issuer string) *TokenResolver {
	return &TokenResolver{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Resolve 解析 token 返回身份
func (r *TokenResolver) Resolve(token string) (Identity, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return r.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(r.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 63)
	if err != nil || userID == 0 {
		return Identity{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	orgID, err := strconv.ParseUint(claims.Org, 10, 63)
	if err != nil || orgID == 0 {
		return Identity{}, fmt.Errorf("%w: bad organisation %q", ErrInvalidToken, claims.Org)
	}

	return Identity{UserID: uint(userID), OrgID: uint(orgID)}, nil
}

// Issue 签发 token，供本地调试和测试使用
func (r *TokenResolver) Issue(id Identity, ttl time.Duration) (string, error) {
	now := r.now()
	claims := tokenClaims{
		Org: strconv.FormatUint(uint64(id.OrgID), 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    r.issuer,
			Subject:   strconv.FormatUint(uint64(id.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
