package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_AddSameUnit(t *testing.T) {
	a := NewScalar(1.5, New("m"))
	b := NewScalar(2.5, New("m"))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 4.0, sum.Value)
	assert.True(t, sum.Unit.Equal(New("m")))
}

func TestScalar_AddUnitMismatch(t *testing.T) {
	a := NewScalar(1, New("m"))
	b := NewScalar(1, New("s"))

	_, err := a.Add(b)
	require.Error(t, err)
	assert.True(t, IsUnitError(err))
	assert.Contains(t, err.Error(), "incompatible units")
}

func TestScalar_MulDivCombineUnits(t *testing.T) {
	d := NewScalar(10, New("m"))
	dt := NewScalar(2, New("s"))

	v := d.Div(dt)
	assert.Equal(t, 5.0, v.Value)
	assert.True(t, v.Unit.Equal(MustParse("m/s")))

	back := v.Mul(dt)
	assert.Equal(t, 10.0, back.Value)
	assert.True(t, back.Unit.Equal(New("m")))
}

func TestScalar_Compare(t *testing.T) {
	a := NewScalar(1, New("m"))
	b := NewScalar(2, New("m"))

	cmp, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	less, err := b.Less(a)
	require.NoError(t, err)
	assert.False(t, less)

	_, err = a.Compare(NewScalar(2, New("s")))
	assert.True(t, IsUnitError(err))
}
