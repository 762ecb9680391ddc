package auth

import (
	"time"

	"asa-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Os tokens são emitidos pelo provedor de autenticação hospedado com o papel
// do voluntário como claim. O painel só verifica e lê — não há cadastro/login aqui.
type JWTCustomClaims struct {
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken - usado pelos testes e por scripts de provisionamento local
func GenerateToken(secret, email string, role models.UserRole) (string, error) {
	claims := &JWTCustomClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
