// Package reconcile grava os registros extraídos nas abas de origem sem duplicar a chave
// (data, técnico) e recalcula a aba consolidada.
//
// O ciclo "ler tudo, mesclar, sobrescrever tudo" não é atômico entre dois escritores
// simultâneos na mesma aba: o último Replace vence. O uso esperado é um único escritor por aba
// por execução.
//
// As datas entram no cruzamento como texto. Comissoes usa DD/MM/AAAA e Aproveitamento usa
// DD/MM/AA, então o mesmo técnico no mesmo dia aparece em duas linhas do consolidado (uma de
// cada origem), adjacentes na ordenação. Na prática o consolidado é a união das duas abas.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/store"
	"go.uber.org/zap"
)

// ErrConsolidationSkipped indica que uma das abas de origem estava vazia; nada foi gravado.
var ErrConsolidationSkipped = errors.New("consolidação ignorada: uma das abas de origem está vazia")

// WriteError indica que o armazenamento recusou a gravação. A aba pode ter ficado
// em estado intermediário; repetir o upsert com a mesma entrada é seguro.
type WriteError struct {
	Sheet string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("erro ao gravar aba %s: %v", e.Sheet, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Reconciler faz o upsert por chave composta sobre uma aba.
type Reconciler struct {
	store store.Store
	log   *zap.Logger
}

func NewReconciler(st store.Store, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{store: st, log: log}
}

// Upsert mescla newRows com o que já está na aba e regrava tudo.
// Linhas novas vêm depois das antigas e, para a mesma chave, a última ocorrência vence
// (inclusive entre duas linhas novas). Devolve o total de linhas após a mescla.
func (r *Reconciler) Upsert(ctx context.Context, sheet string, header []string, newRows [][]string, keyColumns []string) (int, error) {
	keyIdx, err := columnIndexes(header, keyColumns)
	if err != nil {
		return 0, err
	}

	existing, err := r.store.ReadAll(ctx, sheet)
	if err != nil {
		return 0, fmt.Errorf("erro ao ler aba %s: %w", sheet, err)
	}
	if existing == nil {
		if err := r.store.EnsureSheet(ctx, sheet, header); err != nil {
			return 0, &WriteError{Sheet: sheet, Cause: err}
		}
	}

	combined := make([][]string, 0, len(existing)+len(newRows))
	for _, rec := range existing {
		combined = append(combined, canonicalRow(rec.Values(header)))
	}
	for _, row := range newRows {
		combined = append(combined, canonicalRow(fitRow(row, len(header))))
	}

	merged := dedupeKeepLast(combined, keyIdx)
	if err := r.store.Replace(ctx, sheet, header, merged); err != nil {
		r.log.Error("falha ao gravar aba", zap.String("aba", sheet), zap.Error(err))
		return 0, &WriteError{Sheet: sheet, Cause: err}
	}

	r.log.Info("aba atualizada",
		zap.String("aba", sheet),
		zap.Int("existentes", len(existing)),
		zap.Int("novos", len(newRows)),
		zap.Int("total", len(merged)))
	return len(merged), nil
}

func columnIndexes(header, columns []string) ([]int, error) {
	idx := make([]int, len(columns))
	for i, c := range columns {
		idx[i] = -1
		for j, h := range header {
			if h == c {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, fmt.Errorf("coluna de chave %q não existe no cabeçalho", c)
		}
	}
	return idx, nil
}

// canonicalRow põe todas as células na forma de texto usada para comparar e gravar.
func canonicalRow(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func fitRow(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

func rowKey(row []string, keyIdx []int) string {
	parts := make([]string, len(keyIdx))
	for i, k := range keyIdx {
		parts[i] = row[k]
	}
	return strings.Join(parts, "\x1f")
}

// dedupeKeepLast mantém só a última ocorrência de cada chave, na posição dessa ocorrência.
func dedupeKeepLast(rows [][]string, keyIdx []int) [][]string {
	last := make(map[string]int, len(rows))
	for i, row := range rows {
		last[rowKey(row, keyIdx)] = i
	}
	out := make([][]string, 0, len(last))
	for i, row := range rows {
		if last[rowKey(row, keyIdx)] == i {
			out = append(out, row)
		}
	}
	return out
}
