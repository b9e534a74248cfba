package store

import (
	"context"
	"fmt"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/config"
	"go.uber.org/zap"
)

// Open cria o Store do backend configurado. O closer devolvido nunca é nil.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendSheets:
		st, err := NewSheetsStore(ctx, cfg.SheetsSpreadsheetID, cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, noop, err
		}
		log.Info("usando Google Sheets", zap.String("planilha", cfg.SheetsSpreadsheetID))
		return st, noop, nil

	case config.BackendFirestore:
		client, err := NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreDatabaseID)
		if err != nil {
			return nil, noop, err
		}
		log.Info("usando Firestore",
			zap.String("projeto", cfg.FirestoreProjectID),
			zap.String("banco", cfg.FirestoreDatabaseID))
		return NewFirestoreStore(client), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		st, err := NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		log.Info("usando PostgreSQL")
		return st, st.Close, nil

	case config.BackendMemory:
		log.Warn("usando armazenamento em memória; os dados não persistem")
		return NewMemoryStore(), noop, nil
	}

	return nil, noop, fmt.Errorf("backend de armazenamento desconhecido: %q", cfg.StoreBackend)
}
