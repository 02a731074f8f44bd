package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func add(a, b int) int { return a + b }
func mul(a, b int) int { return a * b }

func TestRegisterAndLookup(t *testing.T) {
	r := New()

	require.NoError(t, r.Register("add", add))

	target, err := r.Lookup("add")
	require.NoError(t, err)
	got := target.(func(int, int) int)(2, 3)
	assert.Equal(t, 5, got)
}

func TestRegister_Duplicate(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("add", add))

	err := r.Register("add", mul)
	require.Error(t, err)

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "add", dup.Name)

	// The original registration is untouched.
	target, err := r.Lookup("add")
	require.NoError(t, err)
	assert.Equal(t, 5, target.(func(int, int) int)(2, 3))
}

func TestRegister_Invalid(t *testing.T) {
	r := New()
	assert.Error(t, r.Register("", add))
	assert.Error(t, r.Register("nil", nil))
}

func TestMustRegister_PanicsOnConflict(t *testing.T) {
	r := New()
	r.MustRegister("add", add)
	assert.Panics(t, func() { r.MustRegister("add", mul) })
}

func TestOverride(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("op", add))

	r.Override("op", mul)

	target, err := r.Lookup("op")
	require.NoError(t, err)
	assert.Equal(t, 6, target.(func(int, int) int)(2, 3))
}

func TestLookup_Unknown(t *testing.T) {
	r := New()

	_, err := r.Lookup("ghost")
	require.Error(t, err)

	var unknown *UnknownNameError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
}

func TestAlias(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("add", add))
	require.NoError(t, r.Alias("plus", "add"))

	target, err := r.Lookup("plus")
	require.NoError(t, err)
	assert.Equal(t, 5, target.(func(int, int) int)(2, 3))

	// Aliases cannot shadow and cannot dangle.
	assert.Error(t, r.Alias("plus", "add"))
	assert.Error(t, r.Alias("other", "ghost"))
	assert.Error(t, r.Register("plus", mul))
}

func TestUnregister(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("add", add))
	require.NoError(t, r.Alias("plus", "add"))

	assert.True(t, r.Unregister("plus"))
	assert.False(t, r.Unregister("plus"))
	assert.True(t, r.Unregister("add"))
	assert.False(t, r.Unregister("ghost"))

	_, err := r.Lookup("add")
	assert.Error(t, err)
}

func TestRegisterMap(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterMap(map[string]any{
		"add": add,
		"mul": mul,
	}))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"add", "mul"}, r.Names())
}

func TestSearchPath(t *testing.T) {
	r := New()
	r.AddSearchPath("mathx", Namespace{
		"add":      add,
		"ops.mul":  mul,
		"ops.otra": add,
	})

	target, err := r.Lookup("mathx.add")
	require.NoError(t, err)
	assert.Equal(t, 5, target.(func(int, int) int)(2, 3))

	target, err = r.Lookup("mathx.ops.mul")
	require.NoError(t, err)
	assert.Equal(t, 6, target.(func(int, int) int)(2, 3))

	_, err = r.Lookup("mathx.ghost")
	assert.Error(t, err)
	_, err = r.Lookup("otherns.add")
	assert.Error(t, err)
}

func TestSearchPath_GlobalNamespace(t *testing.T) {
	r := New()
	r.AddSearchPath("", Namespace{"pkg.fn": add})

	target, err := r.Lookup("pkg.fn")
	require.NoError(t, err)
	assert.NotNil(t, target)
}

func TestSearchPath_DirectRegistrationWins(t *testing.T) {
	r := New()
	r.AddSearchPath("m", Namespace{"op": mul})
	require.NoError(t, r.Register("m.op", add))

	target, err := r.Lookup("m.op")
	require.NoError(t, err)
	assert.Equal(t, 5, target.(func(int, int) int)(2, 3))
}

func TestConcurrentLookups(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("add", add))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := r.Lookup("add")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
