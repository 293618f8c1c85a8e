package txcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type sqlCache struct {
	id         string
	db         *sql.DB
	table      string
	driverName string
	codec      Codec
	getStmt    *sql.Stmt
	upsertStmt *sql.Stmt
	deleteStmt *sql.Stmt
	clearStmt  *sql.Stmt
	countStmt  *sql.Stmt
}

var sqlIdentPartRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func newSQLCache(cfg StoreConfig) (Cache, error) {
	if cfg.SQLDriverName == "" || cfg.SQLDSN == "" {
		return nil, errors.New("sql driver requires driver name and dsn")
	}
	db, err := sql.Open(cfg.SQLDriverName, cfg.SQLDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := validateSQLTableName(cfg.SQLTable); err != nil {
		return nil, err
	}
	s := &sqlCache{
		id:         cfg.ID,
		db:         db,
		table:      cfg.SQLTable,
		driverName: cfg.SQLDriverName,
		codec:      cfg.Codec,
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if err := s.prepareStatements(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *sqlCache) ID() string { return s.id }

func (s *sqlCache) Driver() Driver { return DriverSQL }

func (s *sqlCache) ensureSchema() error {
	var stmt string
	switch s.driverName {
	case "postgres", "pgx":
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			k TEXT PRIMARY KEY,
			v BYTEA NOT NULL
		);`, s.table)
	case "mysql":
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			k VARBINARY(255) PRIMARY KEY,
			v LONGBLOB NOT NULL
		) ENGINE=InnoDB;`, s.table)
	default: // sqlite
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			k TEXT PRIMARY KEY,
			v BLOB NOT NULL
		);`, s.table)
	}
	_, err := s.db.Exec(stmt)
	return err
}

func (s *sqlCache) Size(ctx context.Context) (int, error) {
	var n int
	if err := s.countStmt.QueryRowContext(ctx, s.cacheKey("%")).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *sqlCache) Put(ctx context.Context, key string, value any) error {
	body, err := s.codec.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.upsertStmt.ExecContext(ctx, s.cacheKey(key), body, body)
	return err
}

func (s *sqlCache) Get(ctx context.Context, key string) (any, bool, error) {
	var body []byte
	err := s.getStmt.QueryRowContext(ctx, s.cacheKey(key)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	value, err := s.codec.Unmarshal(body)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *sqlCache) Remove(ctx context.Context, key string) (any, bool, error) {
	value, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	if _, err := s.deleteStmt.ExecContext(ctx, s.cacheKey(key)); err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *sqlCache) Clear(ctx context.Context) error {
	_, err := s.clearStmt.ExecContext(ctx, s.cacheKey("%"))
	return err
}

func (s *sqlCache) cacheKey(key string) string {
	return s.id + ":" + key
}

func (s *sqlCache) upsertSQL() string {
	// Placeholders must be positional for postgres/pgx.
	p1, p2, p3 := s.ph(1), s.ph(2), s.ph(3)
	switch s.driverName {
	case "postgres", "pgx":
		return fmt.Sprintf("INSERT INTO %s (k, v) VALUES (%s, %s) ON CONFLICT (k) DO UPDATE SET v = %s", s.table, p1, p2, p3)
	case "mysql":
		return fmt.Sprintf("INSERT INTO %s (k, v) VALUES (%s, %s) ON DUPLICATE KEY UPDATE v = %s", s.table, p1, p2, p3)
	default: // sqlite
		return fmt.Sprintf("INSERT INTO %s (k, v) VALUES (%s, %s) ON CONFLICT(k) DO UPDATE SET v = %s", s.table, p1, p2, p3)
	}
}

func (s *sqlCache) getSQL() string {
	return fmt.Sprintf("SELECT v FROM %s WHERE k = %s", s.table, s.ph(1))
}

func (s *sqlCache) deleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE k = %s", s.table, s.ph(1))
}

func (s *sqlCache) clearSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE k LIKE %s", s.table, s.ph(1))
}

func (s *sqlCache) countSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE k LIKE %s", s.table, s.ph(1))
}

func (s *sqlCache) prepareStatements() error {
	var err error
	if s.getStmt, err = s.db.Prepare(s.getSQL()); err != nil {
		return err
	}
	if s.upsertStmt, err = s.db.Prepare(s.upsertSQL()); err != nil {
		return err
	}
	if s.deleteStmt, err = s.db.Prepare(s.deleteSQL()); err != nil {
		return err
	}
	if s.clearStmt, err = s.db.Prepare(s.clearSQL()); err != nil {
		return err
	}
	if s.countStmt, err = s.db.Prepare(s.countSQL()); err != nil {
		return err
	}
	return nil
}

func (s *sqlCache) ph(i int) string {
	if s.driverName == "postgres" || s.driverName == "pgx" {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func validateSQLTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("sql table name is required")
	}
	for _, part := range strings.Split(name, ".") {
		if !sqlIdentPartRE.MatchString(part) {
			return fmt.Errorf("invalid sql table name %q", name)
		}
	}
	return nil
}
