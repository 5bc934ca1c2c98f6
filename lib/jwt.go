package lib

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"vitrine_server/structs"

	"github.com/golang-jwt/jwt/v5"
)

// ParseToken parses and validates an access token and returns its claims.
func ParseToken(tokenStr, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid sub claim")
	}
	sub, err := strconv.ParseInt(subStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in sub claim: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid email claim")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid role claim")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat claim")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp claim")
	}

	out := &structs.AuthClaims{
		Sub:   sub,
		Email: email,
		Role:  role,
		Iat:   time.Unix(int64(iat), 0),
		Exp:   time.Unix(int64(exp), 0),
	}
	if time.Now().After(out.Exp) {
		return nil, ErrExpiredToken
	}
	return out, nil
}

// ExtractClaims reads the bearer token from the Authorization header and
// returns its validated claims.
func ExtractClaims(r *http.Request, secret string) (*structs.AuthClaims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrInvalidToken
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == header || tokenStr == "" {
		return nil, ErrInvalidToken
	}
	return ParseToken(tokenStr, secret)
}
