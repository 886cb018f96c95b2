package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/erraruga/internal/errors"
	"codeberg.org/mutker/erraruga/internal/logger"
	"codeberg.org/mutker/erraruga/pkg/catalog"
	_ "github.com/mattn/go-sqlite3"
)

// Repository persists catalog entries. Entries keep the position of their
// first save, so List returns them in registration order.
type Repository interface {
	// Save stores entry, replacing the message of an existing rule with the
	// same code, context and tier.
	Save(ctx context.Context, entry catalog.Entry) error
	// SaveAll stores c in one transaction. The first entry for a key wins,
	// both within c and against rules already stored, matching how a
	// Resolver picks among duplicate registrations.
	SaveAll(ctx context.Context, c *catalog.Catalog) error
	List(ctx context.Context) (*catalog.Catalog, error)
	Delete(ctx context.Context, code, errContext string, isDefault bool) (bool, error)
	Close() error
}

type repository struct {
	db     *sql.DB
	logger logger.Logger
	mu     sync.Mutex
}

func Open(ctx context.Context, cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(errors.ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	dsn := cfg.DBPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(errors.ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateAndUpdateSchema(ctx, db, cfg, log); err != nil {
		db.Close()
		return nil, errFactory.Wrap(errors.ErrStorageInit, err)
	}

	log.Debug().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Rule repository initialized")

	return &repository{
		db:     db,
		logger: log,
	}, nil
}

func (r *repository) Save(ctx context.Context, entry catalog.Entry) error {
	if entry.Code == "" {
		return errors.New().WithMessage(errors.ErrInvalidArgument, "catalog entry has no code")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, upsertRuleSQL,
		entry.Code, entry.Context, boolToInt(entry.Default), entry.Message); err != nil {
		return errors.New().Wrap(errors.ErrStorageAccess, err)
	}

	return nil
}

func (r *repository) SaveAll(ctx context.Context, c *catalog.Catalog) error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errFactory.Wrap(errors.ErrTransactionFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRuleSQL)
	if err != nil {
		r.rollback(tx)
		return errFactory.Wrap(errors.ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, entry := range c.Entries {
		if entry.Code == "" {
			r.rollback(tx)
			return errFactory.WithMessage(errors.ErrInvalidArgument, "catalog entry has no code")
		}

		if _, err := stmt.ExecContext(ctx,
			entry.Code, entry.Context, boolToInt(entry.Default), entry.Message); err != nil {
			r.logger.Error().Err(err).Str("code", entry.Code).Msg("Failed to execute insert")
			r.rollback(tx)
			return errFactory.Wrap(errors.ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(errors.ErrTransactionFailed, err)
	}

	r.logger.Debug().Int("rules", len(c.Entries)).Msg("Saved catalog")

	return nil
}

func (r *repository) List(ctx context.Context) (*catalog.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, listRulesSQL)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrStorageAccess, err)
	}
	defer rows.Close()

	c := &catalog.Catalog{}
	for rows.Next() {
		var (
			entry     catalog.Entry
			isDefault int
		)
		if err := rows.Scan(&entry.Code, &entry.Context, &isDefault, &entry.Message); err != nil {
			return nil, errors.New().Wrap(errors.ErrStorageAccess, err)
		}
		entry.Default = isDefault == 1
		c.Entries = append(c.Entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New().Wrap(errors.ErrStorageAccess, err)
	}

	return c, nil
}

func (r *repository) Delete(ctx context.Context, code, errContext string, isDefault bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, deleteRuleSQL, code, errContext, boolToInt(isDefault))
	if err != nil {
		return false, errors.New().Wrap(errors.ErrStorageAccess, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.New().Wrap(errors.ErrStorageAccess, err)
	}

	return n > 0, nil
}

// Close checkpoints the WAL and closes the database. The database is closed
// even when the checkpoint fails; both failures are reported.
func (r *repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var checkpointErr, closeErr error

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		checkpointErr = errors.New().WithData(errors.ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "checkpoint_wal",
			Error: err.Error(),
		})
	}

	if err := r.db.Close(); err != nil {
		closeErr = errors.New().Wrap(errors.ErrStorageClose, err)
	}

	if err := errors.Join(checkpointErr, closeErr); err != nil {
		return err
	}

	r.logger.Debug().Msg("Rule repository closed")

	return nil
}

func (r *repository) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		r.logger.Error().Err(err).Msg("Failed to roll back transaction")
	}
}
