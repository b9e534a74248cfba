package main

import (
	"context"
	"os"
	"time"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/api/responses"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/config"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/ingest"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/reconcile"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/report"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/store"
)

// newIngestService monta o serviço sobre o backend configurado. O closer deve ser chamado ao final.
func newIngestService(ctx context.Context) (ingest.Service, func(), error) {
	if backendOverride != "" {
		_ = os.Setenv("STORE_BACKEND", backendOverride)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	responses.InitLogger(cfg.IsDev())
	log := responses.Log()

	st, closeStore, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	svc := ingest.NewService(
		report.NewService(log, time.Now),
		reconcile.NewReconciler(st, log),
		reconcile.NewConsolidator(st, log),
		log,
	)
	return svc, func() {
		closeStore()
		responses.Sync()
	}, nil
}
