package export

import (
	"bytes"
	"testing"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var sample = []domain.ConsolidatedRecord{
	{Data: "01/02/25", Tecnico: "MCV", Nome: "MARCOS VIEIRA", HorasVendidas: 5.7, Disp: 8, TP: 6.5, TG: 7},
	{Data: "02/02/25", Tecnico: "ABC", TG: 1},
}

func TestConsolidadoCSV(t *testing.T) {
	out, err := NewService().ConsolidadoCSV(sample)
	require.NoError(t, err)

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(out)
	require.NoError(t, err)
	assert.Equal(t,
		"Data;Técnico;Nome;Horas Vendidas;Disp;TP;TG\n"+
			"01/02/25;MCV;MARCOS VIEIRA;5,70;8,00;6,50;7,00\n"+
			"02/02/25;ABC;ABC;0,00;0,00;0,00;1,00\n",
		string(decoded))
}

func TestConsolidadoXLSX(t *testing.T) {
	out, err := NewService().ConsolidadoXLSX(sample)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(domain.SheetConsolidado, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.HeaderExportacao, rows[0])
	assert.Equal(t, "MCV", rows[1][1])
	assert.Equal(t, "MARCOS VIEIRA", rows[1][2])
	assert.Equal(t, "5.7", rows[1][3])
	assert.Equal(t, "ABC", rows[2][2])
}
