package report

import (
	"strings"
	"unicode"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"go.uber.org/zap"
)

const (
	markerFuncionario   = "TOTAL DO FUNCIONARIO"
	markerTotalFilial   = "TOTAL DA FILIAL"
	markerTotalEmpresa  = "TOTAL DA EMPRESA"
	markerHorasVendidas = "HORAS VENDIDAS:"
)

func classifyCommissionRow(text string) rowEvent {
	switch {
	case strings.Contains(text, markerTotalFilial), strings.Contains(text, markerTotalEmpresa):
		return rowEvent{trigger: triggerTerminal}
	case strings.Contains(text, markerFuncionario):
		return rowEvent{trigger: triggerSectionHeader, marker: markerFuncionario, header: commissionCode(text)}
	}
	return rowEvent{trigger: triggerNone}
}

// commissionCode pega o primeiro token depois de "TOTAL DO FUNCIONARIO", sem ':'.
func commissionCode(text string) extraction {
	idx := strings.Index(text, markerFuncionario)
	if idx < 0 {
		return extraction{outcome: noMatch}
	}
	rest := strings.ReplaceAll(text[idx+len(markerFuncionario):], ":", "")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return extraction{outcome: malformed}
	}
	return extraction{outcome: matched, value: fields[0]}
}

// soldHoursCell devolve o valor da primeira célula com "HORAS" e dígito que não seja o rótulo "VENDIDAS".
func soldHoursCell(row Row) (string, bool) {
	for _, cell := range row {
		upper := strings.ToUpper(cell)
		if !strings.Contains(upper, "HORAS") || strings.Contains(upper, "VENDIDAS") || !hasDigit(upper) {
			continue
		}
		return strings.TrimSpace(strings.ReplaceAll(upper, "HORAS", "")), true
	}
	return "", false
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// ScanCommission percorre as linhas do relatório de comissões.
// A leitura para no primeiro total de filial/empresa.
func ScanCommission(rows []Row, filename, reportDate string, log *zap.Logger) []domain.CommissionRecord {
	if log == nil {
		log = zap.NewNop()
	}
	var records []domain.CommissionRecord
	m := newMachine()

	for i, row := range rows {
		text := upperText(row)
		ev := classifyCommissionRow(text)
		if ev.header.outcome == malformed {
			log.Debug("marcador sem código de técnico",
				zap.String("arquivo", filename),
				zap.Error(&MarkerParseError{Marker: ev.marker, Linha: i + 1, Texto: text}))
		}
		if m.apply(ev) {
			break
		}
		if ev.trigger != triggerNone {
			continue
		}

		tech, ok := m.active()
		if !ok || !strings.Contains(text, markerHorasVendidas) {
			continue
		}
		if value, found := soldHoursCell(row); found {
			records = append(records, domain.CommissionRecord{
				DataRelatorio: reportDate,
				Arquivo:       filename,
				Tecnico:       tech.code,
				HorasVendidas: value,
			})
		}
	}
	return records
}
