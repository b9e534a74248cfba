// Package store abstrai a planilha usada como banco de dados.
//
// Nenhuma implementação protege contra escritores concorrentes: Replace sobrescreve a aba
// inteira e o último a gravar vence.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Capacidade usada ao criar uma aba nova.
const (
	DefaultRowCapacity = 1000
	DefaultColCapacity = 20
)

// ErrSheetNotFound é devolvido por ReadCell quando a aba não existe.
var ErrSheetNotFound = errors.New("aba não encontrada")

// Record é uma linha lida da aba, indexada pelo cabeçalho.
type Record map[string]string

// Store é o contrato mínimo com o armazenamento externo.
type Store interface {
	// ReadAll devolve todas as linhas abaixo do cabeçalho. Aba inexistente devolve nil, nil.
	ReadAll(ctx context.Context, sheet string) ([]Record, error)
	// EnsureSheet cria a aba com o cabeçalho informado quando ela ainda não existe.
	EnsureSheet(ctx context.Context, sheet string, header []string) error
	// Replace troca todo o conteúdo da aba por cabeçalho + linhas.
	Replace(ctx context.Context, sheet string, header []string, rows [][]string) error
	// Append acrescenta linhas ao final da aba.
	Append(ctx context.Context, sheet string, rows [][]string) error
	// ReadCell lê uma célula em notação A1 ("B1").
	ReadCell(ctx context.Context, sheet, cell string) (string, error)
}

// Values monta a linha na ordem do cabeçalho; colunas ausentes viram "".
func (r Record) Values(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = r[h]
	}
	return out
}

// ToRecords converte uma matriz cujo primeiro elemento é o cabeçalho.
// Linhas totalmente vazias são descartadas.
func ToRecords(values [][]string) []Record {
	if len(values) == 0 {
		return nil
	}
	header := values[0]
	var out []Record
	for _, row := range values[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseA1 converte "B1" em (linha 0, coluna 1).
func ParseA1(cell string) (row, col int, err error) {
	cell = strings.ToUpper(strings.TrimSpace(cell))
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A'+1)
		i++
	}
	if i == 0 || i == len(cell) {
		return 0, 0, fmt.Errorf("célula inválida: %q", cell)
	}
	for _, ch := range cell[i:] {
		if ch < '0' || ch > '9' {
			return 0, 0, fmt.Errorf("célula inválida: %q", cell)
		}
		row = row*10 + int(ch-'0')
	}
	if row == 0 {
		return 0, 0, fmt.Errorf("célula inválida: %q", cell)
	}
	return row - 1, col - 1, nil
}

// cellAt devolve o valor em (linha, coluna) de uma matriz, ou "" fora dos limites.
func cellAt(values [][]string, row, col int) string {
	if row < 0 || row >= len(values) || col < 0 || col >= len(values[row]) {
		return ""
	}
	return values[row][col]
}
