package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.True(t, cfg.IsDev())
	assert.Error(t, (&Config{}).RequireJWTSecret())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sheets sem planilha", Config{Port: "8080", StoreBackend: BackendSheets}, true},
		{"sheets completo", Config{Port: "8080", StoreBackend: BackendSheets, SheetsSpreadsheetID: "abc"}, false},
		{"firestore sem projeto", Config{Port: "8080", StoreBackend: BackendFirestore}, true},
		{"postgres completo", Config{Port: "8080", StoreBackend: BackendPostgres, DatabaseURL: "postgres://x"}, false},
		{"backend desconhecido", Config{Port: "8080", StoreBackend: "redis"}, true},
		{"porta inválida", Config{Port: "abc", StoreBackend: BackendMemory}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
