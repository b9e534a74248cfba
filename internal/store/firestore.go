package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	firestoreSheets = "planilhas"
	firestoreRows   = "linhas"
)

// FirestoreStore guarda cada aba como um documento em "planilhas" com as linhas na subcoleção "linhas".
type FirestoreStore struct {
	client *firestore.Client
}

type firestoreSheet struct {
	Cabecalho []string `firestore:"cabecalho"`
}

type firestoreRow struct {
	Indice  int      `firestore:"indice"`
	Valores []string `firestore:"valores"`
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// NewFirestoreClient inicializa o cliente do Firestore para o banco informado.
func NewFirestoreClient(ctx context.Context, projectID, databaseID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("o projectID deve ser informado para criar o cliente do Firestore")
	}
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, fmt.Errorf("falha ao inicializar cliente Firestore para o banco '%s': %w", databaseID, err)
	}
	return client, nil
}

func (s *FirestoreStore) sheetRef(sheet string) *firestore.DocumentRef {
	return s.client.Collection(firestoreSheets).Doc(sheet)
}

func (s *FirestoreStore) header(ctx context.Context, sheet string) ([]string, bool, error) {
	snaps, err := s.client.GetAll(ctx, []*firestore.DocumentRef{s.sheetRef(sheet)})
	if err != nil {
		return nil, false, fmt.Errorf("erro ao ler aba %s: %w", sheet, err)
	}
	if len(snaps) == 0 || !snaps[0].Exists() {
		return nil, false, nil
	}
	var meta firestoreSheet
	if err := snaps[0].DataTo(&meta); err != nil {
		return nil, false, fmt.Errorf("erro ao ler cabeçalho da aba %s: %w", sheet, err)
	}
	return meta.Cabecalho, true, nil
}

func (s *FirestoreStore) rows(ctx context.Context, sheet string) ([][]string, error) {
	iter := s.sheetRef(sheet).Collection(firestoreRows).OrderBy("indice", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out [][]string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao ler linhas da aba %s: %w", sheet, err)
		}
		var row firestoreRow
		if err := doc.DataTo(&row); err != nil {
			return nil, fmt.Errorf("erro ao ler linha da aba %s: %w", sheet, err)
		}
		out = append(out, row.Valores)
	}
	return out, nil
}

func (s *FirestoreStore) matrix(ctx context.Context, sheet string) ([][]string, bool, error) {
	header, ok, err := s.header(ctx, sheet)
	if err != nil || !ok {
		return nil, ok, err
	}
	rows, err := s.rows(ctx, sheet)
	if err != nil {
		return nil, true, err
	}
	return append([][]string{header}, rows...), true, nil
}

func (s *FirestoreStore) ReadAll(ctx context.Context, sheet string) ([]Record, error) {
	values, _, err := s.matrix(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return ToRecords(values), nil
}

func (s *FirestoreStore) EnsureSheet(ctx context.Context, sheet string, header []string) error {
	_, ok, err := s.header(ctx, sheet)
	if err != nil || ok {
		return err
	}
	if _, err := s.sheetRef(sheet).Set(ctx, firestoreSheet{Cabecalho: header}); err != nil {
		return fmt.Errorf("erro ao criar aba %s: %w", sheet, err)
	}
	return nil
}

// Replace apaga as linhas antigas e grava as novas com o BulkWriter. Não é transacional:
// uma falha no meio deixa a aba parcialmente gravada.
func (s *FirestoreStore) Replace(ctx context.Context, sheet string, header []string, rows [][]string) error {
	bw := s.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob

	iter := s.sheetRef(sheet).Collection(firestoreRows).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			iter.Stop()
			bw.End()
			return fmt.Errorf("erro ao listar linhas da aba %s: %w", sheet, err)
		}
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			iter.Stop()
			bw.End()
			return fmt.Errorf("erro ao apagar linha da aba %s: %w", sheet, err)
		}
		jobs = append(jobs, job)
	}
	iter.Stop()
	bw.Flush()
	if err := waitJobs(jobs, sheet); err != nil {
		bw.End()
		return err
	}

	job, err := bw.Set(s.sheetRef(sheet), firestoreSheet{Cabecalho: header})
	if err != nil {
		bw.End()
		return fmt.Errorf("erro ao gravar cabeçalho da aba %s: %w", sheet, err)
	}
	jobs = []*firestore.BulkWriterJob{job}
	rowJobs, err := s.setRows(bw, sheet, 0, rows)
	jobs = append(jobs, rowJobs...)
	bw.End()
	if err != nil {
		return err
	}
	return waitJobs(jobs, sheet)
}

func (s *FirestoreStore) setRows(bw *firestore.BulkWriter, sheet string, start int, rows [][]string) ([]*firestore.BulkWriterJob, error) {
	col := s.sheetRef(sheet).Collection(firestoreRows)
	jobs := make([]*firestore.BulkWriterJob, 0, len(rows))
	for i, row := range rows {
		idx := start + i
		ref := col.Doc(fmt.Sprintf("%08d", idx))
		job, err := bw.Set(ref, firestoreRow{Indice: idx, Valores: row})
		if err != nil {
			return jobs, fmt.Errorf("erro ao gravar linha %d da aba %s: %w", idx, sheet, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func waitJobs(jobs []*firestore.BulkWriterJob, sheet string) error {
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("erro ao gravar aba %s: %w", sheet, err)
		}
	}
	return nil
}

func (s *FirestoreStore) Append(ctx context.Context, sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	existing, err := s.rows(ctx, sheet)
	if err != nil {
		return err
	}
	bw := s.client.BulkWriter(ctx)
	jobs, err := s.setRows(bw, sheet, len(existing), rows)
	bw.End()
	if err != nil {
		return err
	}
	return waitJobs(jobs, sheet)
}

func (s *FirestoreStore) ReadCell(ctx context.Context, sheet, cell string) (string, error) {
	row, col, err := ParseA1(cell)
	if err != nil {
		return "", err
	}
	values, ok, err := s.matrix(ctx, sheet)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrSheetNotFound
	}
	return cellAt(values, row, col), nil
}
