package cfgpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath_String(t *testing.T) {
	testCases := []struct {
		name        string
		path        Path
		expectedStr string
	}{
		{
			name:        "simple path",
			path:        Path{Key("a"), Key("b")},
			expectedStr: "a.b",
		},
		{
			name:        "path with indices",
			path:        Path{Key("db"), Key("users"), Index(0), Key("posts"), Index(15)},
			expectedStr: "db.users[0].posts[15]",
		},
		{
			name:        "consecutive indices",
			path:        Path{Key("grid"), Index(2), Index(7)},
			expectedStr: "grid[2][7]",
		},
		{
			name:        "root sequence index",
			path:        Path{Index(3)},
			expectedStr: "[3]",
		},
		{
			name:        "root path",
			path:        Root(),
			expectedStr: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.path.String())
		})
	}
}

func TestPath_Builders(t *testing.T) {
	base := Root().Child("model")
	left := base.Child("layers").Elem(0)
	right := base.Child("optimizer")

	assert.Equal(t, "model.layers[0]", left.String())
	assert.Equal(t, "model.optimizer", right.String())
	// Appending to a shared prefix must not corrupt siblings.
	assert.Equal(t, "model", base.String())
}

func TestPath_IsRoot(t *testing.T) {
	assert.True(t, Root().IsRoot())
	assert.False(t, Root().Child("a").IsRoot())
}

func TestPath_Equal(t *testing.T) {
	p1 := MustParse("a.b[0]")
	p2 := MustParse("a.b[0]")
	p3 := MustParse("a.b[1]")
	p4 := MustParse("a.c[0]")

	assert.True(t, p1.Equal(p2))
	assert.False(t, p1.Equal(p3))
	assert.False(t, p1.Equal(p4))
	assert.False(t, p1.Equal(nil))
	assert.True(t, Root().Equal(nil))
}
