package keywords

import (
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/jsonvalue"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// evaluateType validates the instance's kind against the declared type
// set (spec.md §4.F "type"). "integer" matches both kind=integer and
// kind=number with a zero fractional part — the corrected behavior per
// spec.md §9's Open Question (the source's TypeKeyword.GetRequirements
// always compared against SchemaValueType.Object; this checks the
// matching type for each branch instead).
func evaluateType(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	tv := kw.Value.(schema.TypeValue)
	instance := ctx.Current().Instance
	for _, want := range tv.Types {
		if jsonvalue.MatchesType(instance, want) {
			return
		}
	}
	node.Fail("type", "Type", map[string]any{"expected": tv.Types, "actual": jsonvalue.ClassifyOf(instance).String()})
}

// evaluateConst fails unless the instance is structurally equivalent to
// the declared constant (spec.md §4.F "const").
func evaluateConst(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	cv := kw.Value.(schema.ConstValue)
	instance := ctx.Current().Instance
	if !jsonvalue.Equivalent(instance, cv.Value) {
		node.Fail("const", "Const", nil)
	}
}

// evaluateEnum fails unless some member is structurally equivalent to the
// instance (spec.md §4.F "enum").
func evaluateEnum(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	ev := kw.Value.(schema.EnumValue)
	instance := ctx.Current().Instance
	for _, v := range ev.Values {
		if jsonvalue.Equivalent(instance, v) {
			return
		}
	}
	node.Fail("enum", "Enum", nil)
}
