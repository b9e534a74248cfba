// Package ingest executa o fluxo de um envio: ler cada arquivo, gravar os registros na aba
// de origem e recalcular o consolidado.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/reconcile"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/report"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoDataFound é o aviso de um lote sem nenhum registro. Não é tratado como erro.
var ErrNoDataFound = errors.New("nenhum registro encontrado nos arquivos enviados")

// Upload é um arquivo recebido: nome original e bytes.
type Upload struct {
	Nome  string
	Dados []byte
}

type Service interface {
	ProcessarComissoes(ctx context.Context, files []Upload) (*domain.BatchResult, error)
	ProcessarAproveitamento(ctx context.Context, files []Upload) (*domain.BatchResult, error)
	Consolidar(ctx context.Context) ([]domain.ConsolidatedRecord, error)
	Consolidado(ctx context.Context) ([]domain.ConsolidatedRecord, error)
}

type service struct {
	reports      report.Service
	reconciler   *reconcile.Reconciler
	consolidator *reconcile.Consolidator
	log          *zap.Logger
}

func NewService(reports report.Service, reconciler *reconcile.Reconciler, consolidator *reconcile.Consolidator, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{reports: reports, reconciler: reconciler, consolidator: consolidator, log: log}
}

// extractFunc lê um arquivo e devolve as linhas prontas para a aba.
type extractFunc func(u Upload) ([][]string, error)

func (s *service) ProcessarComissoes(ctx context.Context, files []Upload) (*domain.BatchResult, error) {
	return s.process(ctx, domain.ReportComissao, files, func(u Upload) ([][]string, error) {
		records, err := s.reports.ParseCommission(u.Dados, u.Nome)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, len(records))
		for i, r := range records {
			rows[i] = r.Row()
		}
		return rows, nil
	}, domain.SheetComissoes, domain.HeaderComissoes, domain.KeyComissoes)
}

func (s *service) ProcessarAproveitamento(ctx context.Context, files []Upload) (*domain.BatchResult, error) {
	return s.process(ctx, domain.ReportAproveitamento, files, func(u Upload) ([][]string, error) {
		records, err := s.reports.ParseUtilization(u.Dados, u.Nome)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, len(records))
		for i, r := range records {
			rows[i] = r.Row()
		}
		return rows, nil
	}, domain.SheetAproveitamento, domain.HeaderAproveitamento, domain.KeyAproveitamento)
}

// process lê os arquivos em sequência; erro em um arquivo não impede os demais.
func (s *service) process(ctx context.Context, kind domain.ReportKind, files []Upload, extract extractFunc, sheet string, header, key []string) (*domain.BatchResult, error) {
	result := &domain.BatchResult{
		LoteID: uuid.NewString(),
		Tipo:   kind,
	}
	log := s.log.With(zap.String("lote", result.LoteID), zap.String("tipo", string(kind)))

	var rows [][]string
	for _, f := range files {
		fileRows, err := extract(f)
		fr := domain.FileResult{Arquivo: f.Nome, Registros: len(fileRows)}
		switch {
		case err != nil:
			fr.StatusCode = domain.StatusErroLeitura
			fr.Mensagem = fmt.Sprintf("Erro ao ler %s: %v", f.Nome, err)
			log.Warn("arquivo ignorado", zap.String("arquivo", f.Nome), zap.Error(err))
		case len(fileRows) == 0:
			fr.StatusCode = domain.StatusSemDados
			fr.Mensagem = fmt.Sprintf("Nenhum registro encontrado em %s", f.Nome)
		default:
			fr.StatusCode = domain.StatusOK
			fr.Mensagem = fmt.Sprintf("%s: %d registros extraídos", f.Nome, len(fileRows))
		}
		result.Arquivos = append(result.Arquivos, fr)
		rows = append(rows, fileRows...)
	}
	result.Registros = len(rows)

	if len(rows) == 0 {
		result.Aviso = ErrNoDataFound.Error()
		log.Warn("lote sem registros", zap.Int("arquivos", len(files)))
		return result, nil
	}

	total, err := s.reconciler.Upsert(ctx, sheet, header, rows, key)
	if err != nil {
		return result, fmt.Errorf("falha ao gravar registros: %w", err)
	}
	result.TotalNaAba = total

	if _, err := s.consolidator.Consolidate(ctx); err != nil {
		if !errors.Is(err, reconcile.ErrConsolidationSkipped) {
			return result, fmt.Errorf("falha ao consolidar: %w", err)
		}
		result.Aviso = "Consolidado não atualizado: envie também o outro relatório."
	} else {
		result.Consolidado = true
	}

	log.Info("lote processado",
		zap.Int("registros", result.Registros),
		zap.Int("total_na_aba", result.TotalNaAba),
		zap.Bool("consolidado", result.Consolidado))
	return result, nil
}

func (s *service) Consolidar(ctx context.Context) ([]domain.ConsolidatedRecord, error) {
	return s.consolidator.Consolidate(ctx)
}

// Consolidado devolve o que já está gravado na aba consolidada, sem recalcular.
func (s *service) Consolidado(ctx context.Context) ([]domain.ConsolidatedRecord, error) {
	return s.consolidator.Load(ctx)
}
