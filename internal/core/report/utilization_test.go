package report

import (
	"testing"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const utilizationHTML = `
<html>
	<body>
		<table>
			<tr><td>MECÂNICO: 123 - JOÃO DA SILVA</td></tr>
			<tr><td>Data</td><td>Disp</td><td>TP</td><td>TG</td></tr>
			<tr><td>01/02/25 SEG</td><td>8,00</td><td>6,50</td><td>7,00</td></tr>
			<tr><td>02/02/25 TER</td><td>8,00</td><td>5,00</td></tr>
			<tr><td>TOT.MEC.: 16,00</td><td>6,50</td><td>7,00</td><td>7,00</td></tr>
			<tr><td>03/02/25 QUA</td><td>1</td><td>2</td><td>3</td></tr>
			<tr><td>MECANICO: ABC</td></tr>
			<tr><td>04/02/25</td><td>4,00</td><td>5,00</td><td>6,00</td></tr>
			<tr><td>TOTAL FILIAL:</td><td>30,00</td><td>1</td><td>1</td></tr>
			<tr><td>05/02/25</td><td>9</td><td>9</td><td>9</td></tr>
		</table>
	</body>
</html>`

func TestParseUtilization(t *testing.T) {
	records, err := NewService(nil, fixedNow).ParseUtilization([]byte(utilizationHTML), "aprov.html")
	require.NoError(t, err)
	assert.Equal(t, []domain.UtilizationRecord{
		{Data: "01/02/25", Arquivo: "aprov.html", Tecnico: "123", Disp: "8,00", TP: "6,50", TG: "7,00"},
		{Data: "04/02/25", Arquivo: "aprov.html", Tecnico: "ABC", Disp: "4,00", TP: "5,00", TG: "6,00"},
	}, records)
}

func TestScanUtilization_ResetClearsContext(t *testing.T) {
	rows := []Row{
		{"MECANICO: XYZ"},
		{"TOT.MEC.: 8,00", "", "", ""},
		{"10/02/25 SEG", "8,00", "6,00", "7,00"},
	}

	assert.Empty(t, ScanUtilization(rows, "f.html", nil))
}

func TestScanUtilization_DateIsFirstToken(t *testing.T) {
	rows := []Row{
		{"MECANICO: XYZ"},
		{"10/02/25 SEG", "8,00", "6,00", "7,00"},
		{"11/02/25-TER", "8,00", "6,00", "7,00"},
		{"12/02/25", "8,00", "6,00", "7,00", "extra"},
	}

	records := ScanUtilization(rows, "f.html", nil)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"10/02/25", "11/02/25-TER", "12/02/25"},
		[]string{records[0].Data, records[1].Data, records[2].Data})
	assert.Equal(t, "7,00", records[2].TG)
}

func TestScanUtilization_TotMecIsNotHeader(t *testing.T) {
	rows := []Row{
		{"MECANICO: XYZ"},
		{"TOT.MEC. MECANICO", "", "", ""},
		{"10/02/25", "8,00", "6,00", "7,00"},
	}

	records := ScanUtilization(rows, "f.html", nil)
	require.Len(t, records, 1)
	assert.Equal(t, "XYZ", records[0].Tecnico)
}

func TestScanUtilization_MalformedHeaderKeepsContext(t *testing.T) {
	rows := []Row{
		{"MECANICO: XYZ"},
		{"MECANICO:"},
		{"10/02/25", "8,00", "6,00", "7,00"},
	}

	records := ScanUtilization(rows, "f.html", nil)
	require.Len(t, records, 1)
	assert.Equal(t, "XYZ", records[0].Tecnico)
}

func TestScanUtilization_FourDigitYearIsNotDataRow(t *testing.T) {
	rows := []Row{
		{"MECANICO: XYZ"},
		{"10/02/2025", "8,00", "6,00", "7,00"},
	}

	assert.Empty(t, ScanUtilization(rows, "f.html", nil))
}

func TestParseUtilization_Latin1(t *testing.T) {
	data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(utilizationHTML))
	require.NoError(t, err)

	records, err := NewService(nil, fixedNow).ParseUtilization(data, "aprov.html")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "123", records[0].Tecnico)
}

func TestParseUtilization_UTF16(t *testing.T) {
	records, err := NewService(nil, fixedNow).ParseUtilization(encodeUTF16(t, utilizationHTML), "aprov.html")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ABC", records[1].Tecnico)
}

func encodeUTF16(t *testing.T, s string) []byte {
	t.Helper()
	data, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return data
}
