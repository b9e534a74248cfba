package report

import (
	"time"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"go.uber.org/zap"
)

// Service lê os bytes de um relatório e devolve os registros extraídos.
type Service interface {
	ParseCommission(data []byte, filename string) ([]domain.CommissionRecord, error)
	ParseUtilization(data []byte, filename string) ([]domain.UtilizationRecord, error)
}

type service struct {
	log *zap.Logger
	now func() time.Time
}

// NewService cria o leitor de relatórios. now é usado quando o relatório não traz data.
func NewService(log *zap.Logger, now func() time.Time) Service {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &service{log: log, now: now}
}

func (s *service) ParseCommission(data []byte, filename string) ([]domain.CommissionRecord, error) {
	doc, err := s.load(data, filename, CommissionEncodings)
	if err != nil {
		return nil, err
	}
	reportDate := ExtractReportDate(doc.Text, s.now)
	return ScanCommission(doc.Rows, filename, reportDate, s.log), nil
}

func (s *service) ParseUtilization(data []byte, filename string) ([]domain.UtilizationRecord, error) {
	doc, err := s.load(data, filename, UtilizationEncodings)
	if err != nil {
		return nil, err
	}
	return ScanUtilization(doc.Rows, filename, s.log), nil
}

func (s *service) load(data []byte, filename string, encodings []Encoding) (*Document, error) {
	text, enc, err := Decode(data, encodings)
	if err != nil {
		return nil, err
	}
	s.log.Debug("arquivo decodificado", zap.String("arquivo", filename), zap.String("codificacao", enc.Name))
	return ParseDocument(text)
}
