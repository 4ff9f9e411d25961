package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Leylan24/drift/sqltype"
)

// Dialects understood by the schema inspector.
const (
	SQLite   = "sqlite"
	MySQL    = "mysql"
	Postgres = "postgres"
)

// An Inspector reads table definitions from a live database and converts
// them into loaded descriptors. It is an alternative frontend for
// projects that keep their schema in the database rather than in source
// files.
type Inspector struct {
	db      *sql.DB
	dialect string
}

// NewInspector returns an inspector for the given connection. The
// dialect must be one of SQLite, MySQL or Postgres.
func NewInspector(db *sql.DB, dialect string) (*Inspector, error) {
	switch dialect {
	case SQLite, MySQL, Postgres:
		return &Inspector{db: db, dialect: dialect}, nil
	default:
		return nil, fmt.Errorf("load: unsupported dialect %q", dialect)
	}
}

// InspectSchema reads every user table of the named database schema.
// For SQLite the name selects the schema name of the result only.
func (i *Inspector) InspectSchema(ctx context.Context, name string) (*Schema, error) {
	if name == "" {
		name = "main"
	}
	s := &Schema{Name: name}
	tables, err := i.tableNames(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, tn := range tables {
		t, err := i.inspectTable(ctx, name, tn)
		if err != nil {
			return nil, err
		}
		s.Tables = append(s.Tables, t)
	}
	return s, nil
}

func (i *Inspector) tableNames(ctx context.Context, schema string) ([]string, error) {
	var (
		query string
		args  []any
	)
	switch i.dialect {
	case SQLite:
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	case MySQL:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = ? AND table_type = 'BASE TABLE' ORDER BY table_name"
		args = append(args, schema)
	case Postgres:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name"
		args = append(args, schema)
	}
	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load: list tables: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (i *Inspector) inspectTable(ctx context.Context, schema, table string) (*Table, error) {
	if i.dialect == SQLite {
		return i.inspectSQLiteTable(ctx, table)
	}
	var (
		query string
		args  = []any{schema, table}
	)
	switch i.dialect {
	case MySQL:
		query = "SELECT column_name, data_type, is_nullable, column_key = 'PRI' FROM information_schema.columns WHERE table_schema = ? AND table_name = ? ORDER BY ordinal_position"
	case Postgres:
		query = "SELECT column_name, data_type, is_nullable = 'YES', false FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position"
	}
	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load: inspect %s: %w", table, err)
	}
	defer rows.Close()
	t := &Table{Name: table}
	for rows.Next() {
		var (
			name, typ string
			nullable  any
			pk        bool
		)
		if err := rows.Scan(&name, &typ, &nullable, &pk); err != nil {
			return nil, err
		}
		t.Columns = append(t.Columns, &Column{
			Name:     name,
			Type:     ParseColumnType(typ),
			Nullable: truthy(nullable),
		})
		if pk {
			t.PrimaryKey = append(t.PrimaryKey, name)
		}
	}
	return t, rows.Err()
}

func (i *Inspector) inspectSQLiteTable(ctx context.Context, table string) (*Table, error) {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("load: inspect %s: %w", table, err)
	}
	defer rows.Close()
	t := &Table{Name: table}
	for rows.Next() {
		var (
			cid, pk   int
			name, typ string
			notNull   bool
			dflt      sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		t.Columns = append(t.Columns, &Column{
			Name:     name,
			Type:     ParseColumnType(typ),
			Nullable: !notNull,
		})
		if pk > 0 {
			t.PrimaryKey = append(t.PrimaryKey, name)
		}
	}
	return t, rows.Err()
}

// ParseColumnType maps a raw column type string, as reported by the
// database, onto the scalar enum. Unknown types map to TypeAny following
// SQLite's open typing rules.
func ParseColumnType(raw string) sqltype.Type {
	typ := strings.ToUpper(raw)
	if i := strings.IndexByte(typ, '('); i >= 0 {
		typ = typ[:i]
	}
	typ = strings.TrimSpace(typ)
	switch {
	case typ == "BOOLEAN" || typ == "BOOL" || typ == "TINYINT":
		return sqltype.TypeBool
	case strings.Contains(typ, "INT"):
		return sqltype.TypeInt
	case typ == "NUMERIC" || typ == "DECIMAL":
		return sqltype.TypeBigInt
	case strings.Contains(typ, "CHAR") || strings.Contains(typ, "TEXT") ||
		typ == "CLOB" || typ == "UUID" || typ == "JSON" || typ == "ENUM":
		return sqltype.TypeText
	case typ == "REAL" || typ == "FLOAT" || typ == "DOUBLE" || typ == "DOUBLE PRECISION":
		return sqltype.TypeFloat
	case strings.Contains(typ, "TIMESTAMP") || typ == "DATETIME" || typ == "DATE":
		return sqltype.TypeTimestamp
	case typ == "BLOB" || typ == "BYTEA" || strings.Contains(typ, "BINARY"):
		return sqltype.TypeBlob
	default:
		return sqltype.TypeAny
	}
}

// truthy normalizes the nullable flag across drivers, which report it as
// bool, integer or the strings "YES"/"NO".
func truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		return strings.EqualFold(v, "yes") || v == "1" || strings.EqualFold(v, "true")
	case []byte:
		return truthy(string(v))
	default:
		return false
	}
}
