package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zefrenchwan/standardnames.git/tables"
)

// Dao defines all database operations
type Dao struct {
	// pool to deal with multiple connections
	pool *pgxpool.Pool
}

// NewDao builds a new dao to connect a database via its url
func NewDao(ctx context.Context, url string) (Dao, error) {
	var dao Dao
	if pool, errPool := pgxpool.New(ctx, url); errPool != nil {
		return dao, fmt.Errorf("dao creation failed: %s", errPool.Error())
	} else {
		dao.pool = pool
	}

	return dao, nil
}

// CreateSchema creates the tables and functions, in one transaction
func (d *Dao) CreateSchema(ctx context.Context) error {
	if d == nil || d.pool == nil {
		return errors.New("nil value")
	}

	tx, errTx := d.pool.Begin(ctx)
	if errTx != nil {
		return errTx
	}

	defer tx.Rollback(ctx)
	for _, statement := range schemaStatements {
		if _, err := tx.Exec(ctx, statement); err != nil {
			return fmt.Errorf("schema creation failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// SaveTable stores the table as a json-ld document under key, replacing any previous version
func (d *Dao) SaveTable(ctx context.Context, creator, key string, table *tables.Table, baseURI string) error {
	if d == nil || d.pool == nil {
		return errors.New("nil value")
	} else if table == nil {
		return errors.New("nil table")
	}

	var document bytes.Buffer
	if err := EncodeJSONLD(&document, table, WriteOptions{BaseURI: baseURI}); err != nil {
		return err
	}

	metadata := table.Metadata()
	_, errExec := d.pool.Exec(ctx, queryUpsertTable,
		key, metadata.Title, metadata.Version, metadata.Identifier, baseURI,
		len(table.StandardNames()), document.String(), creator,
	)

	return errExec
}

// LoadTable reads the table stored under key, and the base uri it was saved with.
// It returns ErrTableNotFound if there is no such table
func (d *Dao) LoadTable(ctx context.Context, key string, options ParseOptions) (*tables.Table, string, error) {
	if d == nil || d.pool == nil {
		return nil, "", errors.New("nil value")
	}

	var document []byte
	var baseURI string
	if err := d.pool.QueryRow(ctx, queryLoadTable, key).Scan(&document, &baseURI); errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrTableNotFound
	} else if err != nil {
		return nil, "", err
	}

	options.BaseURI = baseURI
	table, errRead := ReadJSONLD(bytes.NewReader(document), options)
	return table, baseURI, errRead
}

// ListTables returns the summaries of stored tables, filtered by title if filter is not empty
func (d *Dao) ListTables(ctx context.Context, titleFilter string) ([]TableSummaryDTO, error) {
	if d == nil || d.pool == nil {
		return nil, errors.New("nil value")
	}

	query, parameters := queryForTableSummaries(titleFilter)
	var rows pgx.Rows
	if r, err := d.pool.Query(ctx, query, parameters...); err != nil {
		return nil, err
	} else {
		rows = r
	}

	defer rows.Close()

	result := make([]TableSummaryDTO, 0)
	for rows.Next() {
		var summary TableSummaryDTO
		var updated time.Time
		if err := rows.Scan(&summary.Id, &summary.Title, &summary.Version, &summary.Identifier,
			&summary.BaseURI, &summary.StandardNames, &updated); err != nil {
			return nil, err
		}

		summary.UpdatedAt = updated.UTC().Format(DATE_SERDE_FORMAT)
		result = append(result, summary)
	}

	return result, rows.Err()
}

// DeleteTable removes a stored table.
// It returns ErrTableNotFound if there is no such table
func (d *Dao) DeleteTable(ctx context.Context, key string) error {
	if d == nil || d.pool == nil {
		return errors.New("nil value")
	}

	tag, err := d.pool.Exec(ctx, queryDeleteTable, key)
	if err != nil {
		return err
	} else if tag.RowsAffected() == 0 {
		return ErrTableNotFound
	}

	return nil
}

// CheckUser returns true if login and password match
func (d *Dao) CheckUser(ctx context.Context, login, password string) (bool, error) {
	if d == nil || d.pool == nil {
		return false, errors.New("nil value")
	}

	var rows pgx.Rows
	if r, err := d.pool.Query(ctx, "select snt.test_user_password($1, $2)", login, password); err != nil {
		return false, err
	} else {
		rows = r
	}

	defer rows.Close()

	rows.Next()
	var result bool
	if err := rows.Scan(&result); err != nil {
		return false, err
	}

	return result, nil
}

// FindSecretForActiveUser returns the secret for an active user
func (d *Dao) FindSecretForActiveUser(ctx context.Context, login string) (string, error) {
	if d == nil || d.pool == nil {
		return "", errors.New("nil value")
	}

	var secret *string
	if err := d.pool.QueryRow(ctx, "select snt.find_secret_for_user($1)", login).Scan(&secret); err != nil {
		return "", err
	} else if secret == nil {
		return "", fmt.Errorf("no active user %s", login)
	}

	return *secret, nil
}

// UpsertUser changes user authentication if it exists, or insert user.
// Each call issues a new secret, so previous tokens of that user are no longer valid
func (d *Dao) UpsertUser(ctx context.Context, creator, login, password string) error {
	if d == nil || d.pool == nil {
		return errors.New("nil value")
	}

	_, errExec := d.pool.Exec(ctx, "call snt.upsert_user($1,$2,$3,$4)", creator, login, password, uuid.NewString())
	return errExec
}

// Close closes the dao and the underlying pool
func (d *Dao) Close() {
	if d != nil && d.pool != nil {
		d.pool.Close()
	}
}
