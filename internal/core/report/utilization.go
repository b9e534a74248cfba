package report

import (
	"regexp"
	"strings"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/normalize"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"go.uber.org/zap"
)

const (
	markerMecanico         = "MECANICO"
	markerTotMec           = "TOT.MEC"
	markerTotMecReset      = "TOT.MEC.:"
	markerTotalFilialAprov = "TOTAL FILIAL:"
)

// Data DD/MM/AA no início da primeira célula. O registro guarda o primeiro token da célula,
// sem o dia da semana separado por espaço.
var shortDateRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}\b`)

func classifyUtilizationRow(original, key string) rowEvent {
	switch {
	case strings.Contains(original, markerTotalFilialAprov):
		return rowEvent{trigger: triggerTerminal}
	case strings.Contains(key, markerMecanico) && !strings.Contains(key, markerTotMec):
		return rowEvent{trigger: triggerSectionHeader, marker: markerMecanico, header: utilizationCode(key)}
	case strings.Contains(original, markerTotMecReset):
		return rowEvent{trigger: triggerBoundaryReset}
	}
	return rowEvent{trigger: triggerNone}
}

// utilizationCode pega o texto depois de "MECANICO": o trecho antes do primeiro '-'
// ou, sem hífen, o primeiro token.
func utilizationCode(key string) extraction {
	idx := strings.Index(key, markerMecanico)
	if idx < 0 {
		return extraction{outcome: noMatch}
	}
	rest := strings.TrimSpace(strings.ReplaceAll(key[idx+len(markerMecanico):], ":", ""))
	var code string
	if before, _, found := strings.Cut(rest, "-"); found {
		code = strings.TrimSpace(before)
	} else if fields := strings.Fields(rest); len(fields) > 0 {
		code = fields[0]
	}
	if code == "" {
		return extraction{outcome: malformed}
	}
	return extraction{outcome: matched, value: code}
}

// ScanUtilization percorre as linhas do relatório de aproveitamento.
// "TOT.MEC.:" encerra o bloco do técnico; "TOTAL FILIAL:" encerra a leitura.
func ScanUtilization(rows []Row, filename string, log *zap.Logger) []domain.UtilizationRecord {
	if log == nil {
		log = zap.NewNop()
	}
	var records []domain.UtilizationRecord
	m := newMachine()

	for i, row := range rows {
		original := row.Text()
		key := normalize.Key(original)
		ev := classifyUtilizationRow(original, key)
		if ev.header.outcome == malformed {
			log.Debug("marcador sem código de técnico",
				zap.String("arquivo", filename),
				zap.Error(&MarkerParseError{Marker: ev.marker, Linha: i + 1, Texto: original}))
		}
		if m.apply(ev) {
			break
		}
		if ev.trigger != triggerNone {
			continue
		}

		tech, ok := m.active()
		if !ok || len(row) < 4 {
			continue
		}
		first := strings.TrimSpace(row.Cell(0))
		if !shortDateRegex.MatchString(first) {
			continue
		}
		records = append(records, domain.UtilizationRecord{
			Data:    strings.Fields(first)[0],
			Arquivo: filename,
			Tecnico: tech.code,
			Disp:    row.Cell(1),
			TP:      row.Cell(2),
			TG:      row.Cell(3),
		})
	}
	return records
}
