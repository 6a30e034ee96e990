package utils

import (
	"errors"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// SessionTokenClaims identifies which deployment minted a session token.
type SessionTokenClaims struct {
	Secret   string
	Issuer   string
	Audience string
}

func GenerateSessionJWT(sessionID string, claims SessionTokenClaims, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constvars.JWTClaimSessionID: sessionID,
		"iss":                       claims.Issuer,
		"aud":                       claims.Audience,
		"iat":                       time.Now().Unix(),
		"exp":                       expiresAt.Unix(),
	})

	tokenString, err := token.SignedString([]byte(claims.Secret))
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}

	return tokenString, nil
}

func ParseSessionJWT(tokenString string, claims SessionTokenClaims) (string, error) {
	mapClaims, err := parseHMAC(tokenString, claims.Secret)
	if err != nil {
		return "", err
	}

	if claims.Issuer != "" && !mapClaims.VerifyIssuer(claims.Issuer, true) {
		return "", exceptions.ErrTokenInvalidOrExpired(errors.New("issuer mismatch"))
	}
	if claims.Audience != "" && !mapClaims.VerifyAudience(claims.Audience, true) {
		return "", exceptions.ErrTokenInvalidOrExpired(errors.New("audience mismatch"))
	}

	sessionID, ok := mapClaims[constvars.JWTClaimSessionID].(string)
	if !ok || sessionID == "" {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return sessionID, nil
}

func GenerateResetPasswordJWT(uuid, secret string, expiry time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uuid": uuid,
		"exp":  time.Now().Add(expiry).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}

	return tokenString, nil
}

func ParseResetPasswordJWT(tokenString, secret string) (string, error) {
	mapClaims, err := parseHMAC(tokenString, secret)
	if err != nil {
		return "", exceptions.ErrResetTokenInvalid(err)
	}

	uuid, ok := mapClaims["uuid"].(string)
	if !ok || uuid == "" {
		return "", exceptions.ErrResetTokenInvalid(nil)
	}
	return uuid, nil
}

func parseHMAC(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.ErrTokenSigningMethod(nil)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return mapClaims, nil
}
