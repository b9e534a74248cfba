package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractReportDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"data de corte", "Período: 01/01/2025 até 31/01/2025", "31/01/2025"},
		{"corte em maiúsculas", "DE 01/01/2025 ATÉ  15/02/2025", "15/02/2025"},
		{"primeira data", "Emitido em 05/03/2025 | Filial 2", "05/03/2025"},
		{"corte em outro elemento", "Período: 01/02/2025 até | 28/02/2025", "28/02/2025"},
		{"sem data", "Relatório de comissões", "10/03/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractReportDate(tt.text, fixedNow))
		})
	}
}

func TestParseDocument_LeafRowsAndText(t *testing.T) {
	html := `<html><head><style>td{}</style></head><body>
		<p>Cabeçalho até 31/01/2025</p>
		<table><tr><td>
			<table>
				<tr><td>A</td><td> B&nbsp; C </td></tr>
				<tr><th>D</th></tr>
			</table>
		</td></tr></table>
	</body></html>`

	doc, err := ParseDocument(html)
	assert.NoError(t, err)
	assert.Equal(t, []Row{{"A", "B C"}, {"D"}}, doc.Rows)
	assert.Contains(t, doc.Text, "Cabeçalho até 31/01/2025")
	assert.NotContains(t, doc.Text, "td{}")
}
