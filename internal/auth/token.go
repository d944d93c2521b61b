package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal identifies the caller of a protected endpoint.
type Principal struct {
	Subject string
	Role    string
}

// Parser validates HMAC-signed access tokens issued by the company SSO.
type Parser struct {
	secret []byte
}

func NewParser(accessSecret string) *Parser {
	return &Parser{secret: []byte(accessSecret)}
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (p *Parser) Parse(raw string) (Principal, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{Subject: claims.Subject, Role: claims.Role}, nil
}
