package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS planilhas (
	nome      TEXT PRIMARY KEY,
	cabecalho TEXT[] NOT NULL DEFAULT '{}'
);
CREATE TABLE IF NOT EXISTS planilha_linhas (
	planilha TEXT NOT NULL REFERENCES planilhas(nome) ON DELETE CASCADE,
	indice   INTEGER NOT NULL,
	valores  TEXT[] NOT NULL,
	PRIMARY KEY (planilha, indice)
);`

// PostgresStore guarda as abas em duas tabelas. Replace roda numa transação,
// então aqui a troca do conteúdo é atômica.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore conecta, verifica a conexão e cria as tabelas se preciso.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("falha ao verificar conexão com o banco: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("falha ao criar tabelas: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close fecha o pool de conexões.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) matrix(ctx context.Context, sheet string) ([][]string, bool, error) {
	var header []string
	err := s.pool.QueryRow(ctx, `SELECT cabecalho FROM planilhas WHERE nome = $1`, sheet).Scan(&header)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("erro ao ler aba %s: %w", sheet, err)
	}

	rows, err := s.pool.Query(ctx, `SELECT valores FROM planilha_linhas WHERE planilha = $1 ORDER BY indice`, sheet)
	if err != nil {
		return nil, true, fmt.Errorf("erro ao ler linhas da aba %s: %w", sheet, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[[]string])
	if err != nil {
		return nil, true, fmt.Errorf("erro ao ler linhas da aba %s: %w", sheet, err)
	}
	return append([][]string{header}, values...), true, nil
}

func (s *PostgresStore) ReadAll(ctx context.Context, sheet string) ([]Record, error) {
	values, _, err := s.matrix(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return ToRecords(values), nil
}

func (s *PostgresStore) EnsureSheet(ctx context.Context, sheet string, header []string) error {
	if header == nil {
		header = []string{}
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO planilhas (nome, cabecalho) VALUES ($1, $2) ON CONFLICT (nome) DO NOTHING`,
		sheet, header)
	if err != nil {
		return fmt.Errorf("erro ao criar aba %s: %w", sheet, err)
	}
	return nil
}

func (s *PostgresStore) Replace(ctx context.Context, sheet string, header []string, rows [][]string) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO planilhas (nome, cabecalho) VALUES ($1, $2)
			 ON CONFLICT (nome) DO UPDATE SET cabecalho = EXCLUDED.cabecalho`,
			sheet, header); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM planilha_linhas WHERE planilha = $1`, sheet); err != nil {
			return err
		}
		return insertRows(ctx, tx, sheet, 0, rows)
	})
	if err != nil {
		return fmt.Errorf("erro ao gravar aba %s: %w", sheet, err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO planilhas (nome) VALUES ($1) ON CONFLICT (nome) DO NOTHING`, sheet); err != nil {
			return err
		}
		var next int
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(indice) + 1, 0) FROM planilha_linhas WHERE planilha = $1`, sheet).Scan(&next); err != nil {
			return err
		}
		return insertRows(ctx, tx, sheet, next, rows)
	})
	if err != nil {
		return fmt.Errorf("erro ao acrescentar linhas na aba %s: %w", sheet, err)
	}
	return nil
}

func insertRows(ctx context.Context, tx pgx.Tx, sheet string, start int, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"planilha_linhas"},
		[]string{"planilha", "indice", "valores"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return []any{sheet, start + i, rows[i]}, nil
		}),
	)
	return err
}

func (s *PostgresStore) ReadCell(ctx context.Context, sheet, cell string) (string, error) {
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
