package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowExtendIsPersistent(t *testing.T) {
	base := NewRow(0, RowAttr{Name: "x", Ty: U32()})
	extended := base.Extend("y", Bool())

	assert.False(t, base.Has("y"))
	assert.True(t, extended.Has("x"))
	assert.True(t, extended.Has("y"))
}

func TestRowExtendOverwrites(t *testing.T) {
	row := NewRow(0, RowAttr{Name: "x", Ty: U32()})
	row = row.Extend("x", Bool())

	ty, ok := row.Get("x")
	assert.True(t, ok)
	assert.Equal(t, Bool(), ty)
	assert.Equal(t, 1, row.Len())
}

func TestRowAttrsSortedByName(t *testing.T) {
	row := NewRow(0, RowAttr{Name: "z", Ty: U32()}, RowAttr{Name: "a", Ty: Bool()})
	attrs := row.Attrs()
	assert.Len(t, attrs, 2)
	assert.Equal(t, "a", attrs[0].Name)
	assert.Equal(t, "z", attrs[1].Name)
}

func TestRowString(t *testing.T) {
	row := NewRow(5, RowAttr{Name: "x", Ty: U32()})
	assert.Equal(t, "{x: u32 | 't5}", row.String())
}

func TestNamedStructString(t *testing.T) {
	assert.Equal(t, "Point", (&NamedStruct{Name: "Point"}).String())
}
