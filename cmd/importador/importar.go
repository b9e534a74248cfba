package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/ingest"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/spf13/cobra"
)

var importarCmd = &cobra.Command{
	Use:   "importar",
	Short: "Importa um lote de relatórios HTML",
}

var importarJSON bool

func init() {
	importarCmd.PersistentFlags().BoolVar(&importarJSON, "json", false, "Imprime o resultado do lote em JSON")

	importarCmd.AddCommand(&cobra.Command{
		Use:   "comissoes <arquivos...>",
		Short: "Importa relatórios de comissão para a aba Comissoes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportar(cmd.Context(), args, ingest.Service.ProcessarComissoes)
		},
	})
	importarCmd.AddCommand(&cobra.Command{
		Use:   "aproveitamento <arquivos...>",
		Short: "Importa relatórios de aproveitamento para a aba Aproveitamento",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportar(cmd.Context(), args, ingest.Service.ProcessarAproveitamento)
		},
	})

	rootCmd.AddCommand(importarCmd)
}

type batchFunc func(svc ingest.Service, ctx context.Context, files []ingest.Upload) (*domain.BatchResult, error)

func runImportar(ctx context.Context, paths []string, process batchFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}

	uploads, err := readUploads(paths)
	if err != nil {
		return err
	}

	svc, closer, err := newIngestService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	result, err := process(svc, ctx, uploads)
	if err != nil {
		return err
	}
	return printBatch(result)
}

func readUploads(paths []string) ([]ingest.Upload, error) {
	uploads := make([]ingest.Upload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler %s: %w", p, err)
		}
		uploads = append(uploads, ingest.Upload{Nome: filepath.Base(p), Dados: data})
	}
	return uploads, nil
}

func printBatch(result *domain.BatchResult) error {
	if importarJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, f := range result.Arquivos {
		fmt.Printf("[%d] %s\n", f.StatusCode, f.Mensagem)
	}
	fmt.Printf("Lote %s: %d registros extraídos, %d na aba.\n", result.LoteID, result.Registros, result.TotalNaAba)
	if result.Consolidado {
		fmt.Println("Consolidado atualizado.")
	}
	if result.Aviso != "" {
		fmt.Println("Aviso:", result.Aviso)
	}
	return nil
}
