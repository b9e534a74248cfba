package reconcile

import (
	"context"
	"fmt"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/normalize"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/store"
)

// Glossary mapeia a sigla do técnico para o nome completo.
type Glossary map[string]string

// LoadGlossary lê a aba Glossario. Aba ausente resulta em glossário vazio.
func LoadGlossary(ctx context.Context, st store.Store) (Glossary, error) {
	recs, err := st.ReadAll(ctx, domain.SheetGlossario)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %s: %w", domain.SheetGlossario, err)
	}
	g := make(Glossary, len(recs))
	for _, rec := range recs {
		sigla := normalize.Upper(rec[domain.GlossarioSigla])
		nome := normalize.Upper(rec[domain.GlossarioNome])
		if sigla == "" || nome == "" {
			continue
		}
		g[sigla] = nome
	}
	return g, nil
}

// Name devolve o nome completo da sigla ou, sem correspondência, a própria sigla.
func (g Glossary) Name(sigla string) string {
	if nome, ok := g[normalize.Upper(sigla)]; ok {
		return nome
	}
	return sigla
}

// Apply preenche Nome em cada registro.
func (g Glossary) Apply(records []domain.ConsolidatedRecord) {
	for i := range records {
		records[i].Nome = g.Name(records[i].Tecnico)
	}
}
