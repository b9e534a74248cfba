// Package main é o importador de linha de comando: grava relatórios HTML nas abas e recalcula o consolidado.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "importador",
	Short:         "Importa relatórios de comissão e aproveitamento da oficina",
	Long:          "Lê relatórios HTML de comissões e de aproveitamento, grava os registros nas abas de origem e mantém a aba Consolidado.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var backendOverride string

func init() {
	rootCmd.PersistentFlags().StringVar(&backendOverride, "backend", "", "Backend de armazenamento (sobrepõe STORE_BACKEND)")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
