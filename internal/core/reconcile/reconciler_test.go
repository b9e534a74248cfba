package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testHeader = []string{"Data", "Técnico", "Horas"}
	testKey    = []string{"Data", "Técnico"}
)

func TestUpsert_CreatesSheet(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	r := NewReconciler(st, nil)

	n, err := r.Upsert(ctx, "Comissoes", testHeader, [][]string{{"01/01/2025", "ABC", "5,00"}}, testKey)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, [][]string{testHeader, {"01/01/2025", "ABC", "5,00"}}, st.Values("Comissoes"))
}

func TestUpsert_ReplacesSameKey(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.Seed("Comissoes", [][]string{
		testHeader,
		{"01/01/2025", "ABC", "5,00"},
		{"01/01/2025", "XYZ", "1,00"},
	})
	r := NewReconciler(st, nil)

	n, err := r.Upsert(ctx, "Comissoes", testHeader, [][]string{{"01/01/2025", "ABC", "7,50"}}, testKey)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]string{
		testHeader,
		{"01/01/2025", "XYZ", "1,00"},
		{"01/01/2025", "ABC", "7,50"},
	}, st.Values("Comissoes"))
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.Seed("Comissoes", [][]string{testHeader, {"02/01/2025", "OLD", "3,00"}})
	r := NewReconciler(st, nil)
	rows := [][]string{
		{"01/01/2025", "ABC", "5,00"},
		{"01/01/2025", "XYZ", "2,00"},
	}

	first, err := r.Upsert(ctx, "Comissoes", testHeader, rows, testKey)
	require.NoError(t, err)
	afterFirst := st.Values("Comissoes")

	second, err := r.Upsert(ctx, "Comissoes", testHeader, rows, testKey)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, afterFirst, st.Values("Comissoes"))
}

func TestUpsert_LastDuplicateInBatchWins(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	r := NewReconciler(st, nil)

	n, err := r.Upsert(ctx, "Comissoes", testHeader, [][]string{
		{"01/01/2025", "ABC", "1,00"},
		{"01/01/2025", "ABC", "2,00"},
	}, testKey)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "2,00", st.Values("Comissoes")[1][2])
}

func TestUpsert_CanonicalTextAvoidsSpuriousDuplicates(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.Seed("Comissoes", [][]string{testHeader, {" 01/01/2025", "ABC ", "5,00"}})
	r := NewReconciler(st, nil)

	n, err := r.Upsert(ctx, "Comissoes", testHeader, [][]string{{"01/01/2025", "ABC", "6,00"}}, testKey)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpsert_UnknownKeyColumn(t *testing.T) {
	r := NewReconciler(store.NewMemoryStore(), nil)
	_, err := r.Upsert(context.Background(), "X", testHeader, nil, []string{"Sigla"})
	assert.Error(t, err)
}

func TestUpsert_WriteError(t *testing.T) {
	st := store.NewMemoryStore()
	boom := errors.New("falha remota")
	st.FailOn("Replace", boom)
	r := NewReconciler(st, nil)

	_, err := r.Upsert(context.Background(), domain.SheetComissoes, testHeader, [][]string{{"a", "b", "c"}}, testKey)
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, domain.SheetComissoes, writeErr.Sheet)
	assert.ErrorIs(t, err, boom)
}
