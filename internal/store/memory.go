package store

import (
	"context"
	"sync"
)

// MemoryStore guarda as abas em memória. Usado em testes e no backend "memory".
type MemoryStore struct {
	mu     sync.Mutex
	sheets map[string][][]string
	fail   map[string]error
	writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sheets: make(map[string][][]string),
		fail:   make(map[string]error),
	}
}

// FailOn faz a operação ("ReadAll", "Replace", "Append", "EnsureSheet", "ReadCell") devolver err.
func (m *MemoryStore) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = err
}

// Seed grava a matriz (cabeçalho na primeira linha) diretamente.
func (m *MemoryStore) Seed(sheet string, values [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheet] = copyValues(values)
}

// Values devolve uma cópia do conteúdo bruto da aba.
func (m *MemoryStore) Values(sheet string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyValues(m.sheets[sheet])
}

// Writes conta as chamadas de Replace e Append que gravaram.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MemoryStore) ReadAll(_ context.Context, sheet string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["ReadAll"]; err != nil {
		return nil, err
	}
	return ToRecords(m.sheets[sheet]), nil
}

func (m *MemoryStore) EnsureSheet(_ context.Context, sheet string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["EnsureSheet"]; err != nil {
		return err
	}
	if _, ok := m.sheets[sheet]; !ok {
		m.sheets[sheet] = [][]string{append([]string(nil), header...)}
	}
	return nil
}

func (m *MemoryStore) Replace(_ context.Context, sheet string, header []string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["Replace"]; err != nil {
		// Simula o estado intermediário de uma planilha real: limpa e falha antes de gravar.
		m.sheets[sheet] = nil
		return err
	}
	values := make([][]string, 0, len(rows)+1)
	values = append(values, append([]string(nil), header...))
	values = append(values, copyValues(rows)...)
	m.sheets[sheet] = values
	m.writes++
	return nil
}

func (m *MemoryStore) Append(_ context.Context, sheet string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["Append"]; err != nil {
		return err
	}
	m.sheets[sheet] = append(m.sheets[sheet], copyValues(rows)...)
	m.writes++
	return nil
}

func (m *MemoryStore) ReadCell(_ context.Context, sheet, cell string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["ReadCell"]; err != nil {
		return "", err
	}
	values, ok := m.sheets[sheet]
	if !ok {
		return "", ErrSheetNotFound
	}
	row, col, err := ParseA1(cell)
	if err != nil {
		return "", err
	}
	return cellAt(values, row, col), nil
}

func copyValues(values [][]string) [][]string {
	if values == nil {
		return nil
	}
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = append([]string(nil), row...)
	}
	return out
}
