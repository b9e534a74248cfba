package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/reconcile"
	"github.com/spf13/cobra"
)

var consolidarCmd = &cobra.Command{
	Use:   "consolidar",
	Short: "Recalcula a aba Consolidado a partir de Comissoes e Aproveitamento",
	Args:  cobra.NoArgs,
	RunE:  runConsolidar,
}

func init() {
	rootCmd.AddCommand(consolidarCmd)
}

func runConsolidar(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, closer, err := newIngestService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	records, err := svc.Consolidar(ctx)
	if errors.Is(err, reconcile.ErrConsolidationSkipped) {
		fmt.Println("Consolidado não atualizado: uma das abas de origem está vazia.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Consolidado atualizado com %d linhas.\n", len(records))
	return nil
}
