package prelude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-lang/uwuc/internal/types"
)

func TestNewContextSeedsPrimitiveTypeConstructors(t *testing.T) {
	ctx := NewContext(types.NewCounter())
	for _, name := range []string{"Num", "Float", "Str", "Unit", "Bool", "Regex", "Option", "Array", "Callable"} {
		_, ok := ctx.Vars[name]
		assert.True(t, ok, "%s should be seeded", name)
	}
}

func TestNewContextBindsBoolVariantsBothMaps(t *testing.T) {
	ctx := NewContext(types.NewCounter())
	for _, name := range []string{"True", "False"} {
		_, ok := ctx.Vars[name]
		assert.True(t, ok, "%s wrapping function should be bound", name)
		_, ok = ctx.Types[name]
		assert.True(t, ok, "%s naked constructor should be bound", name)
	}
}

func TestNewContextNoneReturnsOption(t *testing.T) {
	c := types.NewCounter()
	ctx := NewContext(c)

	noneSch := ctx.Vars["None"]
	someSch := ctx.Vars["Some"]
	require.NotNil(t, noneSch)
	require.NotNil(t, someSch)

	noneTy := noneSch.Instantiate(c.Fresh)
	_, noneRet, ok := types.Uncurry(types.TCallable, noneTy)
	require.True(t, ok)
	assert.Equal(t, "Option", headName(t, noneRet))
}

func TestIdIsPolymorphic(t *testing.T) {
	c := types.NewCounter()
	ctx := NewContext(c)
	sch := ctx.Vars["id"]
	require.NotEmpty(t, sch.Vars, "id must be generalized, not monomorphic")

	t1 := sch.Instantiate(c.Fresh)
	t2 := sch.Instantiate(c.Fresh)
	assert.NotEqual(t, t1, t2, "each instantiation mints fresh variables")
}

func TestEqualityOperatorsArePolymorphic(t *testing.T) {
	c := types.NewCounter()
	ctx := NewContext(c)
	for _, op := range []string{"==", "!="} {
		sch := ctx.Vars[op]
		require.NotEmpty(t, sch.Vars, "%s must be polymorphic", op)
	}
}

func headName(t *testing.T, ty types.Type) string {
	t.Helper()
	switch ty := ty.(type) {
	case *types.TCon:
		return ty.Name
	case *types.TAp:
		return headName(t, conOf(ty))
	default:
		t.Fatalf("unexpected type shape %T", ty)
		return ""
	}
}

func conOf(ap *types.TAp) types.Type {
	return ap.Con
}
