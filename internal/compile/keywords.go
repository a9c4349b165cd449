package compile

import (
	"fmt"
	"sort"

	"github.com/amis92/jsonschema/internal/schema"
	"github.com/amis92/jsonschema/internal/schemaerr"
)

// parseKeyword converts one raw keyword value into the schema.XxxValue
// shape the evaluator expects, recursively compiling any subschemas it
// contains. A nil, nil return means "recognized but carries no runtime
// value" (currently unused, kept for forward compatibility with
// annotation-only keywords that need no parsing).
func (b *Builder) parseKeyword(name string, raw any, ctx *buildCtx) (any, error) {
	switch name {
	case "type":
		return parseType(raw, ctx.resourcePointer)
	case "const":
		return schema.ConstValue{Value: raw}, nil
	case "enum":
		arr, ok := raw.([]any)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "enum must be an array")
		}
		return schema.EnumValue{Values: arr}, nil

	case "multipleOf":
		d, err := asNumber(raw)
		if err != nil {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "multipleOf: %v", err)
		}
		return schema.MultipleOfValue{Divisor: d}, nil
	case "minimum", "maximum":
		d, err := asNumber(raw)
		if err != nil {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "%s: %v", name, err)
		}
		return schema.NumericBoundValue{Limit: d}, nil
	case "exclusiveMinimum", "exclusiveMaximum":
		d, err := asNumber(raw)
		if err != nil {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "%s: %v", name, err)
		}
		return schema.NumericBoundValue{Limit: d, Exclusive: true}, nil

	case "minLength", "maxLength", "minItems", "maxItems", "minProperties", "maxProperties", "minContains", "maxContains":
		n, err := asInt(raw)
		if err != nil {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "%s: %v", name, err)
		}
		return schema.IntLimitValue{Limit: n}, nil

	case "pattern":
		s, ok := raw.(string)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "pattern must be a string")
		}
		re, err := compilePattern(s)
		if err != nil {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "pattern %q: %v", s, err)
		}
		return schema.PatternValue{Re: re, Raw: s}, nil

	case "format":
		s, ok := raw.(string)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "format must be a string")
		}
		return schema.FormatValue{Name: s}, nil

	case "contentEncoding", "contentMediaType":
		s, ok := raw.(string)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "%s must be a string", name)
		}
		return schema.StringValue{S: s}, nil
	case "contentSchema":
		sub, err := b.compileChild(raw, ctx, name)
		if err != nil {
			return nil, err
		}
		return schema.ContentValue{Sub: sub}, nil

	case "properties", "$defs", "definitions":
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "%s must be an object", name)
		}
		props := make(map[string]*schema.Schema, len(obj))
		for _, k := range sortedKeys(obj) {
			sub, err := b.compileChild(obj[k], ctx, name+"/"+k)
			if err != nil {
				return nil, err
			}
			props[k] = sub
		}
		return schema.PropertiesValue{Props: props}, nil

	case "patternProperties":
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "patternProperties must be an object")
		}
		var patterns []schema.PatternPropertySchema
		for _, k := range sortedKeys(obj) {
			re, err := compilePattern(k)
			if err != nil {
				return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "patternProperties key %q: %v", k, err)
			}
			sub, err := b.compileChild(obj[k], ctx, "patternProperties/"+k)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, schema.PatternPropertySchema{Re: re, Raw: k, Sub: sub})
		}
		return schema.PatternPropertiesValue{Patterns: patterns}, nil

	case "additionalProperties", "propertyNames", "contains", "not", "if", "then", "else", "additionalItems", "unevaluatedProperties", "unevaluatedItems":
		sub, err := b.compileChild(raw, ctx, name)
		if err != nil {
			return nil, err
		}
		return schema.SubschemaValue{Sub: sub}, nil

	case "required":
		arr, err := stringArray(raw)
		if err != nil {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "required: %v", err)
		}
		return schema.RequiredValue{Names: arr}, nil

	case "dependentRequired":
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "dependentRequired must be an object")
		}
		m := make(map[string][]string, len(obj))
		for k, v := range obj {
			arr, err := stringArray(v)
			if err != nil {
				return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "dependentRequired[%s]: %v", k, err)
			}
			m[k] = arr
		}
		return schema.DependentRequiredValue{Map: m}, nil

	case "dependentSchemas":
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "dependentSchemas must be an object")
		}
		m := make(map[string]*schema.Schema, len(obj))
		for _, k := range sortedKeys(obj) {
			sub, err := b.compileChild(obj[k], ctx, "dependentSchemas/"+k)
			if err != nil {
				return nil, err
			}
			m[k] = sub
		}
		return schema.DependentSchemasValue{Map: m}, nil

	case "dependencies":
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "dependencies must be an object")
		}
		req := map[string][]string{}
		subs := map[string]*schema.Schema{}
		for _, k := range sortedKeys(obj) {
			switch v := obj[k].(type) {
			case []any:
				arr, err := stringArray(v)
				if err != nil {
					return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "dependencies[%s]: %v", k, err)
				}
				req[k] = arr
			default:
				sub, err := b.compileChild(v, ctx, "dependencies/"+k)
				if err != nil {
					return nil, err
				}
				subs[k] = sub
			}
		}
		return schema.LegacyDependenciesValue{Required: req, Schemas: subs}, nil

	case "allOf", "anyOf", "oneOf":
		arr, ok := raw.([]any)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "%s must be an array", name)
		}
		var subs []*schema.Schema
		for i, item := range arr {
			sub, err := b.compileChild(item, ctx, fmt.Sprintf("%s/%d", name, i))
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		return schema.SchemaListValue{Subs: subs}, nil

	case "prefixItems":
		arr, ok := raw.([]any)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "prefixItems must be an array")
		}
		var subs []*schema.Schema
		for i, item := range arr {
			sub, err := b.compileChild(item, ctx, fmt.Sprintf("prefixItems/%d", i))
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		return schema.SchemaListValue{Subs: subs}, nil

	case "items":
		if arr, ok := raw.([]any); ok {
			var subs []*schema.Schema
			for i, item := range arr {
				sub, err := b.compileChild(item, ctx, fmt.Sprintf("items/%d", i))
				if err != nil {
					return nil, err
				}
				subs = append(subs, sub)
			}
			return schema.LegacyItemsValue{Array: subs}, nil
		}
		sub, err := b.compileChild(raw, ctx, "items")
		if err != nil {
			return nil, err
		}
		return schema.LegacyItemsValue{Single: sub}, nil

	case "uniqueItems", "$recursiveAnchor":
		bv, _ := raw.(bool)
		return schema.BoolFlagValue{Enabled: bv}, nil

	case "$ref":
		s, ok := raw.(string)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "$ref must be a string")
		}
		return schema.RefValue{Raw: s}, nil
	case "$dynamicRef":
		s, ok := raw.(string)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "$dynamicRef must be a string")
		}
		_, frag := splitFragment(s)
		return schema.DynamicRefValue{Raw: s, AnchorName: frag}, nil
	case "$recursiveRef":
		_, ok := raw.(string)
		if !ok {
			return nil, schemaerr.Newf(schemaerr.ErrBadKeywordArg, ctx.resourcePointer, "$recursiveRef must be a string")
		}
		return schema.RecursiveRefValue{}, nil
	case "$comment", "$vocabulary":
		return nil, nil

	case "title", "description", "deprecated", "readOnly", "writeOnly", "default", "examples":
		return schema.AnnotationValue{Value: raw}, nil

	default:
		return schema.AnnotationValue{Value: raw}, nil
	}
}

func splitFragment(s string) (string, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

func parseType(raw any, loc string) (schema.TypeValue, error) {
	switch v := raw.(type) {
	case string:
		return schema.TypeValue{Types: []string{v}}, nil
	case []any:
		names, err := stringArray(v)
		if err != nil {
			return schema.TypeValue{}, schemaerr.Newf(schemaerr.ErrBadKeywordArg, loc, "type: %v", err)
		}
		return schema.TypeValue{Types: names}, nil
	default:
		return schema.TypeValue{}, schemaerr.Newf(schemaerr.ErrBadKeywordArg, loc, "type must be a string or array of strings")
	}
}

func stringArray(raw any) ([]string, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array, got %T", raw)
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string element, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
