package reconcile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/normalize"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Consolidator recalcula a aba Consolidado a partir de Comissoes e Aproveitamento.
type Consolidator struct {
	store store.Store
	log   *zap.Logger
}

func NewConsolidator(st store.Store, log *zap.Logger) *Consolidator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consolidator{store: st, log: log}
}

type joinKey struct {
	data    string
	tecnico string
}

type commissionSide struct {
	data, tecnico string
	horas         float64
}

type utilizationSide struct {
	data, tecnico string
	disp, tp, tg  float64
}

// Consolidate faz o full outer join por (data, técnico) e regrava a aba Consolidado inteira.
// Se uma das origens estiver vazia devolve ErrConsolidationSkipped e não grava nada.
func (c *Consolidator) Consolidate(ctx context.Context) ([]domain.ConsolidatedRecord, error) {
	var comissoes, aproveitamento []store.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := c.store.ReadAll(gctx, domain.SheetComissoes)
		if err != nil {
			return fmt.Errorf("erro ao ler aba %s: %w", domain.SheetComissoes, err)
		}
		comissoes = recs
		return nil
	})
	g.Go(func() error {
		recs, err := c.store.ReadAll(gctx, domain.SheetAproveitamento)
		if err != nil {
			return fmt.Errorf("erro ao ler aba %s: %w", domain.SheetAproveitamento, err)
		}
		aproveitamento = recs
		return nil
	})
	var names Glossary
	g.Go(func() error {
		names = c.glossary(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(comissoes) == 0 || len(aproveitamento) == 0 {
		c.log.Warn("consolidação ignorada",
			zap.Int("comissoes", len(comissoes)),
			zap.Int("aproveitamento", len(aproveitamento)))
		return nil, ErrConsolidationSkipped
	}

	result := Join(comissoes, aproveitamento)

	rows := make([][]string, len(result))
	for i, r := range result {
		rows[i] = []string{
			r.Data,
			r.Tecnico,
			normalize.FormatBRL(r.HorasVendidas),
			normalize.FormatBRL(r.Disp),
			normalize.FormatBRL(r.TP),
			normalize.FormatBRL(r.TG),
		}
	}
	if err := c.store.Replace(ctx, domain.SheetConsolidado, domain.HeaderConsolidado, rows); err != nil {
		c.log.Error("falha ao gravar consolidado", zap.Error(err))
		return nil, &WriteError{Sheet: domain.SheetConsolidado, Cause: err}
	}

	names.Apply(result)
	c.log.Info("consolidado recalculado", zap.Int("registros", len(result)))
	return result, nil
}

// glossary lê o Glossario. Falha de leitura não impede o consolidado: os nomes ficam iguais às siglas.
func (c *Consolidator) glossary(ctx context.Context) Glossary {
	g, err := LoadGlossary(ctx, c.store)
	if err != nil {
		c.log.Warn("glossário indisponível, usando siglas", zap.Error(err))
		return Glossary{}
	}
	return g
}

// Join cruza as duas abas. Chaves presentes em apenas um lado recebem 0.0 nos campos do outro.
func Join(comissoes, aproveitamento []store.Record) []domain.ConsolidatedRecord {
	left := make(map[joinKey]commissionSide)
	right := make(map[joinKey]utilizationSide)
	var keys []joinKey
	seen := make(map[joinKey]bool)
	addKey := func(k joinKey) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, rec := range comissoes {
		side := commissionSide{
			data:    rec[domain.HeaderComissoes[0]],
			tecnico: rec[domain.HeaderComissoes[2]],
			horas:   normalize.ToFloatBRL(rec[domain.HeaderComissoes[3]]),
		}
		k := joinKey{data: side.data, tecnico: side.tecnico}
		left[k] = side
		addKey(k)
	}
	for _, rec := range aproveitamento {
		side := utilizationSide{
			data:    rec[domain.HeaderAproveitamento[0]],
			tecnico: rec[domain.HeaderAproveitamento[2]],
			disp:    normalize.ToFloatBRL(rec[domain.HeaderAproveitamento[3]]),
			tp:      normalize.ToFloatBRL(rec[domain.HeaderAproveitamento[4]]),
			tg:      normalize.ToFloatBRL(rec[domain.HeaderAproveitamento[5]]),
		}
		k := joinKey{data: side.data, tecnico: side.tecnico}
		right[k] = side
		addKey(k)
	}

	sort.SliceStable(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	out := make([]domain.ConsolidatedRecord, 0, len(keys))
	for _, k := range keys {
		l, hasLeft := left[k]
		r, hasRight := right[k]
		rec := domain.ConsolidatedRecord{
			Data:    coalesce(l.data, r.data),
			Tecnico: coalesce(l.tecnico, r.tecnico),
		}
		if hasLeft {
			rec.HorasVendidas = l.horas
		}
		if hasRight {
			rec.Disp, rec.TP, rec.TG = r.disp, r.tp, r.tg
		}
		out = append(out, rec)
	}
	return out
}

// coalesce dá preferência ao valor do lado das comissões.
func coalesce(commission, utilization string) string {
	if commission != "" {
		return commission
	}
	return utilization
}

func keyLess(a, b joinKey) bool {
	ta, okA := parseDate(a.data)
	tb, okB := parseDate(b.data)
	switch {
	case okA && okB && !ta.Equal(tb):
		return ta.Before(tb)
	case okA != okB:
		return okA
	case !okA && a.data != b.data:
		return a.data < b.data
	}
	return a.tecnico < b.tecnico
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"02/01/2006", "02/01/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Load lê a aba Consolidado já gravada e preenche os nomes pelo Glossario.
func (c *Consolidator) Load(ctx context.Context) ([]domain.ConsolidatedRecord, error) {
	recs, err := c.store.ReadAll(ctx, domain.SheetConsolidado)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %s: %w", domain.SheetConsolidado, err)
	}
	h := domain.HeaderConsolidado
	out := make([]domain.ConsolidatedRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.ConsolidatedRecord{
			Data:          rec[h[0]],
			Tecnico:       rec[h[1]],
			HorasVendidas: normalize.ToFloatBRL(rec[h[2]]),
			Disp:          normalize.ToFloatBRL(rec[h[3]]),
			TP:            normalize.ToFloatBRL(rec[h[4]]),
			TG:            normalize.ToFloatBRL(rec[h[5]]),
		})
	}
	c.glossary(ctx).Apply(out)
	return out, nil
}
