// Package export gera os arquivos de download da aba consolidada.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/normalize"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Service define os formatos de exportação do consolidado.
type Service interface {
	ConsolidadoCSV(records []domain.ConsolidatedRecord) ([]byte, error)
	ConsolidadoXLSX(records []domain.ConsolidatedRecord) ([]byte, error)
}

type service struct{}

// NewService cria uma nova instância do serviço de exportação.
func NewService() Service {
	return &service{}
}

// ConsolidadoCSV gera CSV separado por ';' em Windows-1252, como o Excel brasileiro espera.
func (svc *service) ConsolidadoCSV(records []domain.ConsolidatedRecord) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := charmap.Windows1252.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	if err := writer.Write(domain.HeaderExportacao); err != nil {
		return nil, err
	}
	for _, r := range records {
		record := []string{
			r.Data,
			r.Tecnico,
			nome(r),
			normalize.FormatBRL(r.HorasVendidas),
			normalize.FormatBRL(r.Disp),
			normalize.FormatBRL(r.TP),
			normalize.FormatBRL(r.TG),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buffer.Bytes(), writer.Error()
}

// ConsolidadoXLSX gera uma planilha com os valores numéricos como número.
func (svc *service) ConsolidadoXLSX(records []domain.ConsolidatedRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := domain.SheetConsolidado
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("erro ao nomear aba: %w", err)
	}

	header := make([]interface{}, len(domain.HeaderExportacao))
	for i, h := range domain.HeaderExportacao {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("erro ao gravar cabeçalho: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{r.Data, r.Tecnico, nome(r), r.HorasVendidas, r.Disp, r.TP, r.TG}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("erro ao gravar linha %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func nome(r domain.ConsolidatedRecord) string {
	if r.Nome != "" {
		return r.Nome
	}
	return r.Tecnico
}
