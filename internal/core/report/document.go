package report

import (
	"strings"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/normalize"
	"github.com/PuerkitoBio/goquery"
)

// Row é uma linha <tr> do relatório, com o texto de cada célula já limpo.
type Row []string

// Text junta as células com espaço simples.
func (r Row) Text() string {
	return strings.Join(r, " ")
}

// Cell devolve a célula i ou "" quando a linha é mais curta.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Document é o HTML já interpretado: as linhas de tabela em ordem e o texto corrido do documento.
type Document struct {
	Rows []Row
	Text string
}

// ParseDocument interpreta o HTML e extrai as linhas de tabela.
// Só entram linhas "folha" (sem <tr> aninhado) para não repetir texto de tabelas de layout.
func ParseDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Message: "falha ao ler o documento", Cause: err}
	}

	out := &Document{}
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Find("tr").Length() > 0 {
			return
		}
		var row Row
		tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, cleanCell(cell.Text()))
		})
		if len(row) > 0 {
			out.Rows = append(out.Rows, row)
		}
	})

	var parts []string
	doc.Find("*").Not("script, style, head").Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "#text" {
			return
		}
		if t := cleanCell(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	out.Text = strings.Join(parts, " | ")

	return out, nil
}

func cleanCell(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// upperText é o texto da linha em maiúsculas, sem remover acentos.
func upperText(r Row) string {
	return normalize.Upper(r.Text())
}
