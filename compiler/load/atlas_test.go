package load

import (
	"testing"

	"ariga.io/atlas/sql/schema"

	"github.com/Leylan24/drift/sqltype"

	"github.com/stretchr/testify/require"
)

func TestFromAtlasSchema(t *testing.T) {
	require := require.New(t)

	id := &schema.Column{
		Name: "id",
		Type: &schema.ColumnType{Type: &schema.IntegerType{T: "integer"}},
	}
	users := &schema.Table{
		Name: "users",
		Columns: []*schema.Column{
			id,
			{Name: "name", Type: &schema.ColumnType{Type: &schema.StringType{T: "text"}, Null: true}},
			{Name: "balance", Type: &schema.ColumnType{Type: &schema.DecimalType{T: "decimal"}}},
			{Name: "active", Type: &schema.ColumnType{Type: &schema.BoolType{T: "boolean"}}},
			{Name: "score", Type: &schema.ColumnType{Type: &schema.FloatType{T: "real"}}},
			{Name: "created", Type: &schema.ColumnType{Type: &schema.TimeType{T: "timestamp"}}},
			{Name: "avatar", Type: &schema.ColumnType{Type: &schema.BinaryType{T: "blob"}}},
			{Name: "extra", Type: &schema.ColumnType{Type: &schema.UnsupportedType{T: "geometry"}}},
		},
	}
	users.PrimaryKey = &schema.Index{Parts: []*schema.IndexPart{{C: id}}}

	s, err := FromAtlasSchema(&schema.Schema{
		Name:   "app",
		Tables: []*schema.Table{users},
		Views: []*schema.View{schema.NewView("recent_users", "SELECT name FROM users").AddColumns(
			&schema.Column{Name: "name", Type: &schema.ColumnType{Type: &schema.StringType{T: "text"}}},
		)},
	})
	require.NoError(err)
	require.Equal("app", s.Name)
	require.Len(s.Tables, 1)
	require.Len(s.Views, 1)

	lt := s.Tables[0]
	require.Equal([]string{"id"}, lt.PrimaryKey)
	want := []sqltype.Type{
		sqltype.TypeInt, sqltype.TypeText, sqltype.TypeBigInt, sqltype.TypeBool,
		sqltype.TypeFloat, sqltype.TypeTimestamp, sqltype.TypeBlob, sqltype.TypeAny,
	}
	require.Len(lt.Columns, len(want))
	for i, c := range lt.Columns {
		require.Equal(want[i], c.Type, "column %s", c.Name)
	}
	require.False(lt.Columns[0].Nullable)
	require.True(lt.Columns[1].Nullable)

	require.Equal("recent_users", s.Views[0].Name)
	require.Equal(sqltype.TypeText, s.Views[0].Columns[0].Type)
}

func TestFromAtlasColumnErrors(t *testing.T) {
	require := require.New(t)

	_, err := FromAtlasTable(&schema.Table{
		Name:    "t",
		Columns: []*schema.Column{{Name: "c"}},
	})
	require.EqualError(err, `t: column "c" has no type information`)

	// An empty schema name defaults to "main".
	s, err := FromAtlasSchema(&schema.Schema{})
	require.NoError(err)
	require.Equal("main", s.Name)
}
