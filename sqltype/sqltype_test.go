package sqltype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeBasics(t *testing.T) {
	require := require.New(t)

	require.False(TypeInvalid.Valid())
	require.True(TypeInt.Valid())
	require.False(Type(200).Valid())

	require.Equal("int", TypeInt.String())
	require.Equal("bigInt", TypeBigInt.String())
	require.Equal("INTEGER", TypeBool.SQLiteName())
	require.Equal("TEXT", TypeText.SQLiteName())

	require.True(TypeTimestamp.Numeric())
	require.False(TypeText.Numeric())
	require.False(TypeBlob.Numeric())
}

func TestHostTypeTable(t *testing.T) {
	require := require.New(t)

	require.Nil(TypeInvalid.HostType(false))

	h := TypeInt.HostType(false)
	require.Equal("int64", h.Ident)
	require.False(h.Nullable)
	require.True(TypeInt.HostType(true).Nullable)

	require.Equal("Int", TypeBigInt.HostType(false).Ident)
	require.Equal("math/big", TypeBigInt.HostType(false).PkgPath)
	require.Equal("Time", TypeTimestamp.HostType(false).Ident)

	// HostType returns copies; mutating one must not leak into the table.
	h.Ident = "mutated"
	require.Equal("int64", TypeInt.HostType(false).Ident)
}

func TestFromHost(t *testing.T) {
	require := require.New(t)

	for typ := TypeInt; typ <= TypeAny; typ++ {
		got, ok := FromHost(typ.HostType(false))
		require.True(ok, "type %s", typ)
		require.Equal(typ, got)
		// Nullability is ignored.
		got, ok = FromHost(typ.HostType(true))
		require.True(ok)
		require.Equal(typ, got)
	}

	_, ok := FromHost(&HostType{Ident: "Color", PkgPath: "example.com/app/model"})
	require.False(ok)
	_, ok = FromHost(nil)
	require.False(ok)
}

func TestFutured(t *testing.T) {
	require := require.New(t)

	user := &HostType{Ident: "User", PkgPath: "example.com/app/model"}
	f := Futured(user)
	require.True(f.IsFuture())
	require.False(user.IsFuture())
	require.Same(user, f.Awaited())
	require.Same(user, user.Awaited())
}

func TestNullability(t *testing.T) {
	require := require.New(t)

	h := &HostType{Ident: "string", Nullable: true}
	require.False(h.NonNull().Nullable)
	require.True(h.Nullable) // receiver untouched

	require.Same(h, h.WithNullable(true))
	require.False(h.WithNullable(false).Nullable)
}

func TestEquality(t *testing.T) {
	require := require.New(t)

	a := &HostType{Ident: "List", TypeArgs: []*HostType{{Ident: "string"}}}
	b := &HostType{Ident: "List", TypeArgs: []*HostType{{Ident: "string"}}}
	require.True(a.Equal(b))
	require.False(a.Equal(&HostType{Ident: "List", TypeArgs: []*HostType{{Ident: "int64"}}}))

	require.False(a.Equal(a.WithNullable(true)))
	require.True(a.EqualIgnoreNull(a.WithNullable(true)))

	r1 := &HostType{Record: &RecordType{Fields: []RecordField{{Name: "id", Type: &HostType{Ident: "int64"}}}}}
	r2 := &HostType{Record: &RecordType{Fields: []RecordField{{Name: "id", Type: &HostType{Ident: "int64"}}}}}
	require.True(r1.Equal(r2))
	r2.Record.Fields[0].Name = "uid"
	require.False(r1.Equal(r2))
}

func TestDynamic(t *testing.T) {
	require := require.New(t)

	require.True(TypeAny.HostType(false).IsDynamic())
	require.False(TypeInt.HostType(false).IsDynamic())
	require.False((&HostType{Ident: "any", PkgPath: "example.com/pkg"}).IsDynamic())
}

func TestString(t *testing.T) {
	require := require.New(t)

	require.Equal("int64", TypeInt.HostType(false).String())
	require.Equal("int64?", TypeInt.HostType(true).String())
	require.Equal("big.Int", TypeBigInt.HostType(false).String())
	require.Equal("time.Time?", TypeTimestamp.HostType(true).String())
	require.Equal("Future[big.Int]", Futured(TypeBigInt.HostType(false)).String())

	rec := &HostType{Record: &RecordType{Fields: []RecordField{
		{Name: "id", Type: &HostType{Ident: "int64"}},
		{Name: "name", Type: &HostType{Ident: "string"}},
	}}}
	require.Equal("({int64 id, string name})", rec.String())
}
