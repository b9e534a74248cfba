package report

import (
	"testing"
	"time"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

const commissionHTML = `
<html>
	<body>
		<div>Relatório de comissões - período de 01/01/2025 até 31/01/2025</div>
		<table>
			<tr><td>TOTAL DO FUNCIONARIO: MCV</td><td></td></tr>
			<tr><td>Horas Vendidas:</td><td>5,70 HORAS</td></tr>
			<tr><td>TOTAL DA EMPRESA</td><td>Horas Vendidas:</td><td>99,00 HORAS</td></tr>
		</table>
	</body>
</html>`

func TestParseCommission_EndToEnd(t *testing.T) {
	svc := NewService(nil, fixedNow)

	records, err := svc.ParseCommission([]byte(commissionHTML), "comissoes_jan.html")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.CommissionRecord{
		DataRelatorio: "31/01/2025",
		Arquivo:       "comissoes_jan.html",
		Tecnico:       "MCV",
		HorasVendidas: "5,70",
	}, records[0])
}

func TestParseCommission_CutoffDateInSeparateElement(t *testing.T) {
	rows := `<table>
			<tr><td>TOTAL DO FUNCIONARIO: MCV</td></tr>
			<tr><td>Horas Vendidas:</td><td>5,70 HORAS</td></tr>
			<tr><td>TOTAL DA EMPRESA</td></tr>
		</table>`
	tests := []struct {
		name   string
		header string
	}{
		{"negrito", `<p>Período: 01/02/2025 até <b>28/02/2025</b></p>`},
		{"células", `<table><tr><td>Período: 01/02/2025</td><td>até</td><td>28/02/2025</td></tr></table>`},
	}

	svc := NewService(nil, fixedNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := "<html><body>" + tt.header + rows + "</body></html>"
			records, err := svc.ParseCommission([]byte(html), "fev.html")
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "28/02/2025", records[0].DataRelatorio)
		})
	}
}

func TestParseCommission_FallbackDate(t *testing.T) {
	html := `<table>
		<tr><td>TOTAL DO FUNCIONARIO: ABC</td></tr>
		<tr><td>Horas Vendidas:</td><td>1,00 HORAS</td></tr>
	</table>`

	records, err := NewService(nil, fixedNow).ParseCommission([]byte(html), "x.html")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "10/03/2025", records[0].DataRelatorio)
}

func TestScanCommission_StopsAtCompanyTotal(t *testing.T) {
	rows := []Row{
		{"TOTAL DO FUNCIONARIO: MCV"},
		{"Horas Vendidas:", "5,70 HORAS"},
		{"TOTAL DA EMPRESA", "105,00 HORAS"},
		{"TOTAL DO FUNCIONARIO: ZZZ"},
		{"Horas Vendidas:", "3,00 HORAS"},
	}

	records := ScanCommission(rows, "f.html", "31/01/2025", nil)
	require.Len(t, records, 1)
	assert.Equal(t, "MCV", records[0].Tecnico)
}

func TestScanCommission_StopsAtBranchTotal(t *testing.T) {
	rows := []Row{
		{"TOTAL DO FUNCIONARIO: MCV"},
		{"Total da Filial", "Horas Vendidas:", "40,00 HORAS"},
		{"Horas Vendidas:", "5,70 HORAS"},
	}

	assert.Empty(t, ScanCommission(rows, "f.html", "31/01/2025", nil))
}

func TestScanCommission_NoTechnicianNoRecord(t *testing.T) {
	rows := []Row{
		{"Horas Vendidas:", "5,70 HORAS"},
	}

	assert.Empty(t, ScanCommission(rows, "f.html", "31/01/2025", nil))
}

func TestScanCommission_MalformedHeaderKeepsContext(t *testing.T) {
	rows := []Row{
		{"TOTAL DO FUNCIONARIO: MCV"},
		{"Horas Vendidas:", "5,70 HORAS"},
		{"TOTAL DO FUNCIONARIO:"},
		{"Horas Vendidas:", "2,30 HORAS"},
	}

	records := ScanCommission(rows, "f.html", "31/01/2025", nil)
	require.Len(t, records, 2)
	assert.Equal(t, "MCV", records[1].Tecnico)
	assert.Equal(t, "2,30", records[1].HorasVendidas)
}

func TestScanCommission_FirstQualifyingCellOnly(t *testing.T) {
	rows := []Row{
		{"TOTAL DO FUNCIONARIO: JPS ANTONIO"},
		{"Horas Vendidas: 1,00 HORAS", "7,25 horas", "9,99 HORAS"},
		{"Horas trabalhadas", "8,00 HORAS"},
	}

	records := ScanCommission(rows, "f.html", "31/01/2025", nil)
	require.Len(t, records, 1)
	assert.Equal(t, "JPS", records[0].Tecnico)
	assert.Equal(t, "7,25", records[0].HorasVendidas)
}

func TestScanCommission_MultipleTechnicians(t *testing.T) {
	rows := []Row{
		{"TOTAL DO FUNCIONARIO: AAA"},
		{"Horas Vendidas:", "1,00 HORAS"},
		{"TOTAL DO FUNCIONARIO: BBB"},
		{"Horas Vendidas:", "2,00 HORAS"},
	}

	records := ScanCommission(rows, "f.html", "31/01/2025", nil)
	require.Len(t, records, 2)
	assert.Equal(t, "AAA", records[0].Tecnico)
	assert.Equal(t, "BBB", records[1].Tecnico)
}

func TestParseCommission_UTF16Rejected(t *testing.T) {
	data := encodeUTF16(t, commissionHTML)

	_, err := NewService(nil, fixedNow).ParseCommission(data, "x.html")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}
