// Package config carrega a configuração do ambiente (e do arquivo .env, se houver).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Backends de armazenamento suportados.
const (
	BackendSheets    = "sheets"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// Config reúne as variáveis de ambiente usadas pelo servidor e pelo importador.
type Config struct {
	Port                  string `validate:"required,numeric"`
	AppEnv                string
	JWTSecret             string
	StoreBackend          string `validate:"required,oneof=sheets firestore postgres memory"`
	SheetsSpreadsheetID   string `validate:"required_if=StoreBackend sheets"`
	GoogleCredentialsFile string
	FirestoreProjectID    string `validate:"required_if=StoreBackend firestore"`
	FirestoreDatabaseID   string
	DatabaseURL           string `validate:"required_if=StoreBackend postgres"`
}

// Load lê o .env (opcional) e as variáveis de ambiente, aplica os padrões e valida.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getenv("PORT", "8080"),
		AppEnv:                getenv("APP_ENV", "prod"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		StoreBackend:          strings.ToLower(getenv("STORE_BACKEND", BackendSheets)),
		SheetsSpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		FirestoreProjectID:    os.Getenv("FIRESTORE_PROJECT_ID"),
		FirestoreDatabaseID:   os.Getenv("FIRESTORE_DATABASE_ID"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate confere os campos obrigatórios de acordo com o backend escolhido.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuração inválida: %w", err)
	}
	return nil
}

// RequireJWTSecret é usado pelo servidor web, que não sobe sem o segredo do token.
func (c *Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("configuração inválida: JWT_SECRET não definido")
	}
	return nil
}

// IsDev indica ambiente de desenvolvimento (log legível no console).
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
