package loader

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// HCL loads .hcl documents. Attributes map to tree keys, blocks nest
// into mappings keyed by block type and labels, and variable traversals
// translate into `${...}` references so the engine resolves them the
// same way it does YAML strings.
type HCL struct{}

func NewHCL() *HCL { return &HCL{} }

func (l *HCL) Extensions() []string { return []string{".hcl"} }

func (l *HCL) Load(_ context.Context, path string) (any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected HCL body type %T", path, file.Body)
	}
	return bodyToTree(body)
}

// bodyToTree flattens an HCL body into a plain mapping. Repeated block
// types collect into a sequence under the type name.
func bodyToTree(body *hclsyntax.Body) (map[string]any, error) {
	tree := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := exprToNative(body.Attributes[name].Expr)
		if err != nil {
			return nil, fmt.Errorf("in attribute %q: %w", name, err)
		}
		tree[name] = v
	}

	for _, block := range body.Blocks {
		sub, err := bodyToTree(block.Body)
		if err != nil {
			return nil, fmt.Errorf("in block %q: %w", block.Type, err)
		}
		// Labels nest the block one level deeper per label, so
		// `service "db" { ... }` lands at service.db.
		node := any(sub)
		for i := len(block.Labels) - 1; i >= 0; i-- {
			node = map[string]any{block.Labels[i]: node}
		}
		if err := mergeBlock(tree, block.Type, node); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func mergeBlock(tree map[string]any, key string, node any) error {
	existing, ok := tree[key]
	if !ok {
		tree[key] = node
		return nil
	}
	em, eok := existing.(map[string]any)
	nm, nok := node.(map[string]any)
	if !eok || !nok {
		return fmt.Errorf("duplicate key %q", key)
	}
	for k, v := range nm {
		if _, dup := em[k]; dup {
			return fmt.Errorf("duplicate key %q in block %q", k, key)
		}
		em[k] = v
	}
	return nil
}

// exprToNative converts an HCL expression into the engine's tree shape.
// Traversals and interpolated templates are not evaluated here; they
// become `${...}` reference strings for the engine to resolve against
// the full tree.
func exprToNative(expr hclsyntax.Expression) (any, error) {
	switch e := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return "${" + traversalKey(e.Traversal) + "}", nil

	case *hclsyntax.TemplateExpr:
		if e.IsStringLiteral() {
			v, diags := e.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("evaluating template: %s", diags.Error())
			}
			return escapeLiteral(v.AsString()), nil
		}
		var b strings.Builder
		for _, part := range e.Parts {
			switch p := part.(type) {
			case *hclsyntax.LiteralValueExpr:
				if p.Val.Type() != cty.String {
					return nil, fmt.Errorf("unsupported template part of type %s", p.Val.Type().FriendlyName())
				}
				b.WriteString(escapeLiteral(p.Val.AsString()))
			case *hclsyntax.ScopeTraversalExpr:
				b.WriteString("${" + traversalKey(p.Traversal) + "}")
			default:
				return nil, fmt.Errorf("unsupported expression in string template: %T", part)
			}
		}
		return b.String(), nil

	case *hclsyntax.TemplateWrapExpr:
		// A template that is one interpolation and nothing else,
		// like "${db.port}".
		return exprToNative(e.Wrapped)

	case *hclsyntax.TupleConsExpr:
		seq := make([]any, len(e.Exprs))
		for i, item := range e.Exprs {
			v, err := exprToNative(item)
			if err != nil {
				return nil, err
			}
			seq[i] = v
		}
		return seq, nil

	case *hclsyntax.ObjectConsExpr:
		obj := make(map[string]any, len(e.Items))
		for _, item := range e.Items {
			key, err := objectKey(item.KeyExpr)
			if err != nil {
				return nil, err
			}
			v, err := exprToNative(item.ValueExpr)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key, err)
			}
			obj[key] = v
		}
		return obj, nil

	default:
		v, diags := expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating expression: %s", diags.Error())
		}
		return ctyToNative(v)
	}
}

func objectKey(expr hclsyntax.Expression) (string, error) {
	if wrapped, ok := expr.(*hclsyntax.ObjectConsKeyExpr); ok {
		// Bare identifier keys like `host = ...` inside an object.
		if t, diags := hcl.AbsTraversalForExpr(wrapped.Wrapped); !diags.HasErrors() && len(t) == 1 {
			return t.RootName(), nil
		}
		expr = wrapped.Wrapped
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("evaluating object key: %s", diags.Error())
	}
	if v.Type() != cty.String {
		return "", fmt.Errorf("object key must be a string, got %s", v.Type().FriendlyName())
	}
	return v.AsString(), nil
}

// traversalKey renders a traversal in the engine's path syntax,
// e.g. db.hosts[0].name.
func traversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// escapeLiteral protects literal `${` text from the engine's reference
// scanner.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "${", "$${")
}

// ctyToNative recursively converts an evaluated cty value to its plain
// Go counterpart, with integral numbers landing as int.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return escapeLiteral(v.AsString()), nil

	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int(f), nil
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			native, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		obj := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			native, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			obj[key.AsString()] = native
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
