package auth

import (
	"context"
	"testing"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("segredo-de-teste")

func TestLogin_PlainSecret(t *testing.T) {
	st := store.NewMemoryStore()
	st.Seed(domain.SheetConfig, [][]string{{"Senha", "oficina123"}})
	svc := NewService(st, testSecret, nil)

	token, err := svc.Login(context.Background(), "oficina123")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return testSecret, nil })
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	_, err = svc.Login(context.Background(), "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("oficina123"), bcrypt.MinCost)
	require.NoError(t, err)
	st := store.NewMemoryStore()
	st.Seed(domain.SheetConfig, [][]string{{"Senha", string(hash)}})
	svc := NewService(st, testSecret, nil)

	_, err = svc.Login(context.Background(), "oficina123")
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), string(hash))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NotConfigured(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), testSecret, nil)

	_, err := svc.Login(context.Background(), "")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}
