package store

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore usa uma planilha do Google Sheets; cada aba é uma tabela.
type SheetsStore struct {
	srv           *sheets.Service
	spreadsheetID string
}

// NewSheetsStore cria o cliente. Sem arquivo de credenciais, usa as credenciais padrão do ambiente.
func NewSheetsStore(ctx context.Context, spreadsheetID, credentialsFile string) (*SheetsStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("o ID da planilha deve ser informado")
	}
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar cliente do Google Sheets: %w", err)
	}
	return &SheetsStore{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// quoteSheet devolve o nome da aba no formato aceito em ranges A1.
func quoteSheet(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func (s *SheetsStore) sheetExists(ctx context.Context, sheet string) (bool, error) {
	resp, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("erro ao listar abas: %w", err)
	}
	for _, sh := range resp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheet {
			return true, nil
		}
	}
	return false, nil
}

func (s *SheetsStore) values(ctx context.Context, rng string) ([][]string, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = fmt.Sprint(v)
		}
	}
	return out, nil
}

func (s *SheetsStore) ReadAll(ctx context.Context, sheet string) ([]Record, error) {
	exists, err := s.sheetExists(ctx, sheet)
	if err != nil || !exists {
		return nil, err
	}
	values, err := s.values(ctx, quoteSheet(sheet))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %s: %w", sheet, err)
	}
	return ToRecords(values), nil
}

func (s *SheetsStore) EnsureSheet(ctx context.Context, sheet string, header []string) error {
	exists, err := s.sheetExists(ctx, sheet)
	if err != nil || exists {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: sheet,
					GridProperties: &sheets.GridProperties{
						RowCount:    DefaultRowCapacity,
						ColumnCount: DefaultColCapacity,
					},
				},
			},
		}},
	}
	if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("erro ao criar aba %s: %w", sheet, err)
	}
	if len(header) == 0 {
		return nil
	}
	return s.write(ctx, sheet, [][]string{header})
}

// Replace limpa a aba e grava tudo de novo. Se a gravação falhar depois da limpeza,
// a aba fica vazia; quem chamou deve repetir a operação.
func (s *SheetsStore) Replace(ctx context.Context, sheet string, header []string, rows [][]string) error {
	if err := s.EnsureSheet(ctx, sheet, nil); err != nil {
		return err
	}
	if _, err := s.srv.Spreadsheets.Values.Clear(s.spreadsheetID, quoteSheet(sheet), &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("erro ao limpar aba %s: %w", sheet, err)
	}
	values := make([][]string, 0, len(rows)+1)
	values = append(values, header)
	values = append(values, rows...)
	return s.write(ctx, sheet, values)
}

func (s *SheetsStore) write(ctx context.Context, sheet string, values [][]string) error {
	vr := &sheets.ValueRange{Values: toInterfaces(values)}
	_, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, quoteSheet(sheet)+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("erro ao gravar aba %s: %w", sheet, err)
	}
	return nil
}

func (s *SheetsStore) Append(ctx context.Context, sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	vr := &sheets.ValueRange{Values: toInterfaces(rows)}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, quoteSheet(sheet)+"!A1", vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("erro ao acrescentar linhas na aba %s: %w", sheet, err)
	}
	return nil
}

func (s *SheetsStore) ReadCell(ctx context.Context, sheet, cell string) (string, error) {
	if _, _, err := ParseA1(cell); err != nil {
		return "", err
	}
	exists, err := s.sheetExists(ctx, sheet)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrSheetNotFound
	}
	values, err := s.values(ctx, quoteSheet(sheet)+"!"+cell)
	if err != nil {
		return "", fmt.Errorf("erro ao ler célula %s!%s: %w", sheet, cell, err)
	}
	return cellAt(values, 0, 0), nil
}

func toInterfaces(values [][]string) [][]interface{} {
	out := make([][]interface{}, len(values))
	for i, row := range values {
		out[i] = make([]interface{}, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}
