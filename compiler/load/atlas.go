package load

import (
	"fmt"

	"ariga.io/atlas/sql/schema"

	"github.com/Leylan24/drift/sqltype"
)

// FromAtlasSchema converts an inspected or parsed atlas schema into a
// loaded schema. It is the bridge between the external DDL frontend and
// the analyzer's own descriptors.
func FromAtlasSchema(s *schema.Schema) (*Schema, error) {
	name := s.Name
	if name == "" {
		name = "main"
	}
	out := &Schema{Name: name}
	for _, t := range s.Tables {
		lt, err := FromAtlasTable(t)
		if err != nil {
			return nil, err
		}
		out.Tables = append(out.Tables, lt)
	}
	for _, v := range s.Views {
		lv, err := FromAtlasView(v)
		if err != nil {
			return nil, err
		}
		out.Views = append(out.Views, lv)
	}
	return out, nil
}

// FromAtlasTable converts a single atlas table.
func FromAtlasTable(t *schema.Table) (*Table, error) {
	lt := &Table{Name: t.Name}
	for _, c := range t.Columns {
		lc, err := fromAtlasColumn(t.Name, c)
		if err != nil {
			return nil, err
		}
		lt.Columns = append(lt.Columns, lc)
	}
	if pk := t.PrimaryKey; pk != nil {
		for _, p := range pk.Parts {
			if p.C != nil {
				lt.PrimaryKey = append(lt.PrimaryKey, p.C.Name)
			}
		}
	}
	return lt, nil
}

// FromAtlasView converts a single atlas view.
func FromAtlasView(v *schema.View) (*View, error) {
	lv := &View{Name: v.Name}
	for _, c := range v.Columns {
		lc, err := fromAtlasColumn(v.Name, c)
		if err != nil {
			return nil, err
		}
		lv.Columns = append(lv.Columns, lc)
	}
	return lv, nil
}

func fromAtlasColumn(owner string, c *schema.Column) (*Column, error) {
	if c.Type == nil {
		return nil, fmt.Errorf("%s: column %q has no type information", owner, c.Name)
	}
	t, err := fromAtlasType(c.Type.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: column %q: %w", owner, c.Name, err)
	}
	return &Column{
		Name:     c.Name,
		Type:     t,
		Nullable: c.Type.Null,
	}, nil
}

// fromAtlasType maps the atlas column type model onto the scalar enum.
func fromAtlasType(t schema.Type) (sqltype.Type, error) {
	switch t.(type) {
	case *schema.IntegerType:
		return sqltype.TypeInt, nil
	case *schema.DecimalType:
		return sqltype.TypeBigInt, nil
	case *schema.StringType, *schema.EnumType, *schema.UUIDType, *schema.JSONType:
		return sqltype.TypeText, nil
	case *schema.BoolType:
		return sqltype.TypeBool, nil
	case *schema.FloatType:
		return sqltype.TypeFloat, nil
	case *schema.TimeType:
		return sqltype.TypeTimestamp, nil
	case *schema.BinaryType:
		return sqltype.TypeBlob, nil
	case *schema.UnsupportedType:
		return sqltype.TypeAny, nil
	default:
		return sqltype.TypeAny, fmt.Errorf("unhandled atlas type %T", t)
	}
}
