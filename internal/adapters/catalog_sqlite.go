package adapters

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	_ "modernc.org/sqlite"

	"buildstage/internal/ports"
	"buildstage/internal/shared"
	"buildstage/internal/types"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS recipes (
	name          TEXT NOT NULL,
	version       TEXT NOT NULL,
	requires      TEXT NOT NULL DEFAULT '[]',
	options       TEXT NOT NULL DEFAULT '{}',
	artifact_dirs TEXT NOT NULL DEFAULT '[]',
	PRIMARY KEY (name, version)
)`

// SQLiteCatalogAdapter serves the same catalog port as the YAML file
// adapter out of a local SQLite database. List columns are stored as
// JSON so a row round-trips without a schema change per field.
type SQLiteCatalogAdapter struct {
	Path string
	db   *sql.DB
}

func NewSQLiteCatalogAdapter(path string) *SQLiteCatalogAdapter {
	return &SQLiteCatalogAdapter{Path: path}
}

func (a *SQLiteCatalogAdapter) Versions(name string) ([]string, error) {
	db, err := a.open()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(
		`SELECT version FROM recipes WHERE name = ? ORDER BY version`,
		shared.NormalizeDependencyName(name),
	)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query catalog versions").
			WithCause(err)
	}
	defer rows.Close()
	var versions []string
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to scan catalog version row").
				WithCause(err)
		}
		versions = append(versions, version)
	}
	if err := rows.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read catalog versions").
			WithCause(err)
	}
	return versions, nil
}

func (a *SQLiteCatalogAdapter) Recipe(name string, version string) (types.Recipe, error) {
	db, err := a.open()
	if err != nil {
		return types.Recipe{}, err
	}
	normalized := shared.NormalizeDependencyName(name)
	var requiresJSON, optionsJSON, dirsJSON string
	err = db.QueryRow(
		`SELECT requires, options, artifact_dirs FROM recipes WHERE name = ? AND version = ?`,
		normalized, version,
	).Scan(&requiresJSON, &optionsJSON, &dirsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Recipe{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no recipe for %s/%s in catalog", name, version))
	}
	if err != nil {
		return types.Recipe{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query catalog recipe").
			WithCause(err)
	}
	recipe := types.Recipe{Name: normalized, Version: version}
	if err := json.Unmarshal([]byte(requiresJSON), &recipe.Requires); err != nil {
		return types.Recipe{}, invalidCatalogRow(normalized, version, err)
	}
	if err := json.Unmarshal([]byte(optionsJSON), &recipe.Options); err != nil {
		return types.Recipe{}, invalidCatalogRow(normalized, version, err)
	}
	if err := json.Unmarshal([]byte(dirsJSON), &recipe.ArtifactDirs); err != nil {
		return types.Recipe{}, invalidCatalogRow(normalized, version, err)
	}
	recipe.ArtifactDirs = resolveArtifactDirs(filepath.Dir(a.Path), recipe.ArtifactDirs)
	return recipe, nil
}

// WriteCatalog rebuilds the recipes table from the index inside one
// transaction.
func (a *SQLiteCatalogAdapter) WriteCatalog(index types.CatalogIndex) error {
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create catalog directory").
			WithCause(err)
	}
	db, err := a.openForWrite()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return writeCatalogError(err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM recipes`); err != nil {
		return writeCatalogError(err)
	}
	for _, name := range shared.SortedKeys(index.Packages) {
		versions := index.Packages[name]
		for _, version := range shared.SortedKeys(versions) {
			recipe := versions[version]
			requiresJSON, err := marshalCatalogColumn(recipe.Requires, []string{})
			if err != nil {
				return writeCatalogError(err)
			}
			optionsJSON, err := marshalCatalogColumn(recipe.Options, types.OptionMap{})
			if err != nil {
				return writeCatalogError(err)
			}
			dirsJSON, err := marshalCatalogColumn(recipe.ArtifactDirs, []string{})
			if err != nil {
				return writeCatalogError(err)
			}
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO recipes (name, version, requires, options, artifact_dirs) VALUES (?, ?, ?, ?, ?)`,
				shared.NormalizeDependencyName(name), version, requiresJSON, optionsJSON, dirsJSON,
			); err != nil {
				return writeCatalogError(err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return writeCatalogError(err)
	}
	return nil
}

func (a *SQLiteCatalogAdapter) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *SQLiteCatalogAdapter) open() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if _, err := os.Stat(a.Path); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("catalog database not found").
			WithCause(err)
	}
	return a.openForWrite()
}

func (a *SQLiteCatalogAdapter) openForWrite() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := sql.Open("sqlite", a.Path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open catalog database").
			WithCause(err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to prepare catalog schema").
			WithCause(err)
	}
	a.db = db
	return db, nil
}

// marshalCatalogColumn encodes a value, substituting the given zero
// value so columns never hold JSON null.
func marshalCatalogColumn[T any](value T, empty T) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		data, err = json.Marshal(empty)
		if err != nil {
			return "", err
		}
	}
	return string(data), nil
}

func invalidCatalogRow(name string, version string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid catalog row for %s/%s", name, version)).
		WithCause(err)
}

func writeCatalogError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write catalog database").
		WithCause(err)
}

var _ ports.CatalogPort = (*SQLiteCatalogAdapter)(nil)
var _ ports.CatalogWriterPort = (*SQLiteCatalogAdapter)(nil)
