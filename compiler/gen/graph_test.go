package gen

import (
	"context"
	"testing"

	"github.com/Leylan24/drift/compiler/load"
	"github.com/Leylan24/drift/sqltype"

	"github.com/stretchr/testify/require"
)

func testSchema() *load.Schema {
	return &load.Schema{
		Name: "app",
		Tables: []*load.Table{
			{
				Name:       "users",
				PrimaryKey: []string{"id"},
				Columns: []*load.Column{
					{Name: "id", Type: sqltype.TypeInt},
					{Name: "name", Type: sqltype.TypeText},
				},
			},
			{
				Name: "groups",
				Columns: []*load.Column{
					{Name: "id", Type: sqltype.TypeInt},
				},
				RowClass: &load.RowClassRef{Type: &sqltype.HostType{Ident: "Ghost", PkgPath: "example.com/app/model"}},
			},
		},
		Views: []*load.View{
			{Name: "active_users", Columns: []*load.Column{
				{Name: "name", Type: sqltype.TypeText},
			}},
		},
		Queries: []*load.Query{
			{Name: "countUsers", SQL: "SELECT COUNT(*) AS c FROM users", Columns: []*load.Column{
				{Name: "c", Type: sqltype.TypeInt},
			}},
		},
	}
}

func TestNewGraph(t *testing.T) {
	require := require.New(t)

	g, err := NewGraph(MustNewConfig(WithPackage("example.com/app/db")), testSchema())
	require.Error(err)
	require.NotNil(g)
	require.Len(g.Tables, 2)
	require.Len(g.Views, 1)
	require.Len(g.Queries, 1)

	// The broken table is carried, marked invalid; its sibling is fine.
	users, ok := g.Table("users")
	require.True(ok)
	require.False(users.Invalid)
	require.NotNil(users.RowClass)
	require.True(users.RowClass.IsRecord)

	groups, ok := g.Table("groups")
	require.True(ok)
	require.True(groups.Invalid)

	require.False(g.Views[0].Invalid)
	require.False(g.Queries[0].Invalid)

	diags := g.Diagnostics()
	require.Len(diags, 1)
	require.Equal("groups", diags[0].Element)
	require.ErrorIs(diags[0].Err, ErrInvalidRowClass)
}

func TestResolveMatchesNewGraph(t *testing.T) {
	require := require.New(t)

	cfg := MustNewConfig(WithPackage("example.com/app/db"))
	sequential, _ := NewGraph(cfg, testSchema(), testSchema())
	parallel, err := Resolve(context.Background(), cfg, testSchema(), testSchema())
	require.Error(err)
	require.NotNil(parallel)
	require.Len(parallel.Tables, len(sequential.Tables))
	for i := range sequential.Tables {
		require.Equal(sequential.Tables[i].Name, parallel.Tables[i].Name)
		require.Equal(sequential.Tables[i].Invalid, parallel.Tables[i].Invalid)
	}
	require.Len(parallel.Diagnostics(), len(sequential.Diagnostics()))
}

func TestTableNaming(t *testing.T) {
	require := require.New(t)

	g, _ := NewGraph(MustNewConfig(WithPackage("example.com/app/db")), testSchema())
	users, _ := g.Table("users")
	require.Equal("User", users.EntityName())
	require.Equal("User", users.DataClassName())
	require.Equal("UserCompanion", users.CompanionName())
	require.Equal("Users", users.InfoName())

	pk := users.PrimaryKeyColumns()
	require.Len(pk, 1)
	require.Equal("id", pk[0].Name)

	require.Equal("ActiveUser", g.Views[0].EntityName())
	require.Equal("countUsers", g.Queries[0].MethodName())
	require.Equal("CountUsersResult", g.Queries[0].ResultClassName())
}

func TestCompanionNameFromRowClass(t *testing.T) {
	require := require.New(t)

	sc := testSchema()
	sc.Classes = []*load.Class{{
		Name:    "AppUser",
		PkgPath: "example.com/app/model",
		Constructors: []*load.Constructor{{Parameters: []*load.Parameter{
			{Name: "id", Type: &sqltype.HostType{Ident: "int64"}, Named: true, Required: true},
			{Name: "name", Type: &sqltype.HostType{Ident: "string"}, Named: true, Required: true},
		}}},
	}}
	sc.Tables[0].RowClass = &load.RowClassRef{Type: &sqltype.HostType{Ident: "AppUser", PkgPath: "example.com/app/model"}}

	cfg := MustNewConfig(WithPackage("example.com/app/db"))
	cfg.Options.UseRowClassCompanionName = true
	g, _ := NewGraph(cfg, sc)
	users, _ := g.Table("users")
	require.Equal("AppUser", users.DataClassName())
	require.Equal("AppUserCompanion", users.CompanionName())
}

func TestConfigOptions(t *testing.T) {
	require := require.New(t)

	_, err := NewConfig(WithPackage(""))
	require.ErrorIs(err, ErrMissingConfig)

	_, err = NewConfig(WithTarget(""))
	require.ErrorIs(err, ErrMissingConfig)

	cfg, err := NewConfig(
		WithPackage("example.com/app/db"),
		WithTarget("out"),
		WithHeader("// custom header"),
		WithCompanions(false),
		WithModular(true),
	)
	require.NoError(err)
	require.Equal("db", cfg.pkgName())
	require.False(cfg.Options.Companions)
	require.True(cfg.Options.Modular)

	err = cfg.ApplyAll(WithPackage(""), WithTarget(""))
	require.Error(err)
	require.ErrorContains(err, "package cannot be empty")
	require.ErrorContains(err, "target directory cannot be empty")
}
