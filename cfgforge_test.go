package cfgforge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cfgforge"
	"github.com/vk/cfgforge/registry"
)

type pool struct {
	DSN  string `cfg:"dsn"`
	Size int    `cfg:"size"`
}

type service struct {
	Name string `cfg:"name"`
	Pool any    `cfg:"pool"`
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	reg.MustRegister("pool", &pool{})
	reg.MustRegister("service", &service{})
	reg.MustRegister("join", func(parts []string) string {
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += "-"
			}
			out += p
		}
		return out
	})
	return reg
}

func TestInstantiate_EndToEnd(t *testing.T) {
	reg := newRegistry(t)

	cfg := map[string]any{
		"db": map[string]any{
			"host": "localhost",
			"port": 5432,
		},
		"app": map[string]any{
			"_target_": "service",
			"name":     "api",
			"pool": map[string]any{
				"_target_": "pool",
				"dsn":      "postgres://${db.host}:${db.port}/app",
				"size":     8,
			},
		},
	}

	v, err := cfgforge.Instantiate(context.Background(), cfg, reg)
	require.NoError(t, err)

	tree := v.(map[string]any)
	svc := tree["app"].(*service)
	require.Equal(t, "api", svc.Name)
	p := svc.Pool.(*pool)
	require.Equal(t, "postgres://localhost:5432/app", p.DSN)
	assert.Equal(t, 8, p.Size)
}

func TestInstantiate_SharedReference(t *testing.T) {
	reg := newRegistry(t)

	cfg := map[string]any{
		"shared": map[string]any{
			"_target_": "pool",
			"dsn":      "main",
		},
		"a": map[string]any{"_target_": "service", "name": "a", "pool": "${shared}"},
		"b": map[string]any{"_target_": "service", "name": "b", "pool": "${shared}"},
	}

	v, err := cfgforge.Instantiate(context.Background(), cfg, reg)
	require.NoError(t, err)

	tree := v.(map[string]any)
	a := tree["a"].(*service)
	b := tree["b"].(*service)
	assert.Same(t, a.Pool, b.Pool)
	assert.Same(t, tree["shared"], a.Pool)
}

func TestInstantiate_PartialRoot(t *testing.T) {
	reg := newRegistry(t)

	cfg := map[string]any{
		"_target_": "join",
		"_args_":   []any{[]any{"a", "b", "c"}},
	}

	v, err := cfgforge.Instantiate(context.Background(), cfg, reg, cfgforge.WithPartial())
	require.NoError(t, err)

	deferred, ok := v.(*cfgforge.Deferred)
	require.True(t, ok)
	require.Equal(t, "join", deferred.Target())

	got, err := deferred.Call(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a-b-c", got)
}

func TestInstantiate_Overrides(t *testing.T) {
	reg := newRegistry(t)

	cfg := map[string]any{
		"_target_": "service",
		"name":     "old",
	}

	v, err := cfgforge.Instantiate(context.Background(), cfg, reg,
		cfgforge.WithOverrides(map[string]any{"name": "new"}))
	require.NoError(t, err)
	require.Equal(t, "new", v.(*service).Name)
}

func TestInstantiate_StrictRejectsUnknownArgument(t *testing.T) {
	reg := newRegistry(t)

	cfg := map[string]any{
		"_target_": "pool",
		"dsn":      "x",
		"sizzle":   1,
	}

	_, err := cfgforge.Instantiate(context.Background(), cfg, reg, cfgforge.WithStrict())
	require.Error(t, err)

	var unexpected *cfgforge.UnexpectedArgumentError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, []string{"sizzle"}, unexpected.Keys)
}

func TestInstantiate_CustomTargetKey(t *testing.T) {
	reg := newRegistry(t)

	cfg := map[string]any{
		"@call": "pool",
		"dsn":   "x",
	}

	v, err := cfgforge.Instantiate(context.Background(), cfg, reg, cfgforge.WithTargetKey("@call"))
	require.NoError(t, err)
	require.Equal(t, "x", v.(*pool).DSN)
}

func TestInstantiate_ErrorTypesSurface(t *testing.T) {
	reg := registry.New()
	reg.MustRegister("boom", func() (int, error) { return 0, errors.New("kaput") })

	_, err := cfgforge.Instantiate(context.Background(), map[string]any{"_target_": "boom"}, reg)
	var inst *cfgforge.InstantiationError
	require.ErrorAs(t, err, &inst)
	require.EqualError(t, errors.Unwrap(inst), "kaput")

	_, err = cfgforge.Instantiate(context.Background(), map[string]any{"_target_": "nope"}, reg)
	var unknown *cfgforge.UnknownNameError
	require.ErrorAs(t, err, &unknown)

	_, err = cfgforge.Instantiate(context.Background(), map[string]any{"x": "${y.z}"}, reg)
	var unresolved *cfgforge.UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolved)
}

func TestResolve_LeavesDirectivesAlone(t *testing.T) {
	cfg := map[string]any{
		"db": map[string]any{"host": "localhost"},
		"app": map[string]any{
			"_target_": "service",
			"host":     "${db.host}",
		},
	}

	v, err := cfgforge.Resolve(context.Background(), cfg)
	require.NoError(t, err)

	tree := v.(map[string]any)
	appNode := tree["app"].(map[string]any)
	require.Equal(t, "service", appNode["_target_"])
	require.Equal(t, "localhost", appNode["host"])
}

func TestResolve_Variables(t *testing.T) {
	cfg := map[string]any{"greeting": "hello ${name}"}

	v, err := cfgforge.Resolve(context.Background(), cfg,
		cfgforge.WithVariables(map[string]any{"name": "world"}))
	require.NoError(t, err)
	require.Equal(t, "hello world", v.(map[string]any)["greeting"])
}
