package load

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Leylan24/drift/sqltype"

	"github.com/stretchr/testify/require"
)

func TestNewInspector(t *testing.T) {
	require := require.New(t)

	db, _, err := sqlmock.New()
	require.NoError(err)
	defer db.Close()

	_, err = NewInspector(db, "oracle")
	require.EqualError(err, `load: unsupported dialect "oracle"`)

	for _, d := range []string{SQLite, MySQL, Postgres} {
		_, err = NewInspector(db, d)
		require.NoError(err)
	}
}

func TestInspectMySQL(t *testing.T) {
	require := require.New(t)

	db, mock, err := sqlmock.New()
	require.NoError(err)
	defer db.Close()

	mock.ExpectQuery("SELECT table_name FROM information_schema.tables").
		WithArgs("app").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))
	mock.ExpectQuery("SELECT column_name, data_type, is_nullable").
		WithArgs("app", "users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "pk"}).
			AddRow("id", "bigint", "NO", true).
			AddRow("name", "varchar", "YES", false))

	insp, err := NewInspector(db, MySQL)
	require.NoError(err)
	s, err := insp.InspectSchema(context.Background(), "app")
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())

	require.Equal("app", s.Name)
	require.Len(s.Tables, 1)
	users := s.Tables[0]
	require.Equal("users", users.Name)
	require.Equal([]string{"id"}, users.PrimaryKey)
	require.Len(users.Columns, 2)
	require.Equal(sqltype.TypeInt, users.Columns[0].Type)
	require.False(users.Columns[0].Nullable)
	require.Equal(sqltype.TypeText, users.Columns[1].Type)
	require.True(users.Columns[1].Nullable)
}

func TestInspectSQLite(t *testing.T) {
	require := require.New(t)

	db, mock, err := sqlmock.New()
	require.NoError(err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("todos"))
	mock.ExpectQuery(`PRAGMA table_info`).
		WillReturnRows(sqlmock.NewRows([]string{"cid", "name", "type", "notnull", "dflt_value", "pk"}).
			AddRow(0, "id", "INTEGER", true, nil, 1).
			AddRow(1, "body", "TEXT", false, nil, 0))

	insp, err := NewInspector(db, SQLite)
	require.NoError(err)
	s, err := insp.InspectSchema(context.Background(), "")
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())

	// Empty schema name defaults to "main".
	require.Equal("main", s.Name)
	require.Len(s.Tables, 1)
	todos := s.Tables[0]
	require.Equal([]string{"id"}, todos.PrimaryKey)
	require.False(todos.Columns[0].Nullable)
	require.True(todos.Columns[1].Nullable)
}

func TestParseColumnType(t *testing.T) {
	require := require.New(t)

	for raw, want := range map[string]sqltype.Type{
		"INTEGER":          sqltype.TypeInt,
		"bigint":           sqltype.TypeInt,
		"INT UNSIGNED":     sqltype.TypeInt,
		"BOOLEAN":          sqltype.TypeBool,
		"tinyint":          sqltype.TypeBool,
		"NUMERIC":          sqltype.TypeBigInt,
		"DECIMAL(10,2)":    sqltype.TypeBigInt,
		"VARCHAR(255)":     sqltype.TypeText,
		"text":             sqltype.TypeText,
		"uuid":             sqltype.TypeText,
		"json":             sqltype.TypeText,
		"REAL":             sqltype.TypeFloat,
		"double precision": sqltype.TypeFloat,
		"TIMESTAMP":        sqltype.TypeTimestamp,
		"datetime":         sqltype.TypeTimestamp,
		"BLOB":             sqltype.TypeBlob,
		"bytea":            sqltype.TypeBlob,
		"varbinary(16)":    sqltype.TypeBlob,
		"geometry":         sqltype.TypeAny,
	} {
		require.Equal(want, ParseColumnType(raw), "raw type %q", raw)
	}
}

func TestTruthy(t *testing.T) {
	require := require.New(t)

	require.True(truthy(true))
	require.True(truthy(int64(1)))
	require.True(truthy("YES"))
	require.True(truthy([]byte("yes")))
	require.False(truthy(false))
	require.False(truthy(int64(0)))
	require.False(truthy("NO"))
	require.False(truthy(nil))
}
