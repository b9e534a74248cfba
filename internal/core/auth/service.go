package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Célula da aba Config que guarda a senha de acesso.
const secretCell = "B1"

// Validade do token emitido no login.
const tokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials  = errors.New("senha inválida")
	ErrSecretNotConfigured = errors.New("senha de acesso não configurada")
)

type Service interface {
	Login(ctx context.Context, password string) (string, error)
}

type service struct {
	store     store.Store
	jwtSecret []byte
	log       *zap.Logger
	now       func() time.Time
}

func NewService(st store.Store, jwtSecret []byte, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{store: st, jwtSecret: jwtSecret, log: log, now: time.Now}
}

// Login compara a senha com Config!B1 e, se bater, devolve um token JWT.
// B1 pode conter a senha em texto ou um hash bcrypt.
func (s *service) Login(ctx context.Context, password string) (string, error) {
	stored, err := s.store.ReadCell(ctx, domain.SheetConfig, secretCell)
	if err != nil && !errors.Is(err, store.ErrSheetNotFound) {
		s.log.Error("erro ao ler senha de acesso", zap.Error(err))
		return "", errors.New("erro ao consultar a planilha")
	}
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return "", ErrSecretNotConfigured
	}

	if !matches(stored, password) {
		return "", ErrInvalidCredentials
	}

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "painel",
		"exp": s.now().Add(tokenTTL).Unix(),
		"iat": s.now().Unix(),
	})
	tokenString, err := claims.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.New("erro ao gerar token de acesso")
	}
	return tokenString, nil
}

func matches(stored, password string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
