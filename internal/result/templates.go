package result

import "sync"

// Templates is the global, overridable error-message template table
// (spec.md §4.G, §6, §9 "Global state... read-mostly"). Keys are internal
// symbols such as "ExclusiveMinimum", "ContainsTooFew", "UniqueItems".
// Callers needing localization should install their overrides via
// SetTemplate before any concurrent evaluation begins.
var (
	templatesMu sync.RWMutex
	templates   = defaultTemplates()
)

func defaultTemplates() map[string]string {
	return map[string]string{
		"Type":                  "value must be of type [[expected]], got [[actual]]",
		"Const":                 "value must equal the constant value",
		"Enum":                  "value must be one of the enumerated values",
		"MultipleOf":            "[[received]] is not a multiple of [[divisor]]",
		"Minimum":               "[[received]] is less than the minimum of [[limit]]",
		"Maximum":               "[[received]] is greater than the maximum of [[limit]]",
		"ExclusiveMinimum":      "[[received]] must be strictly greater than [[limit]]",
		"ExclusiveMaximum":      "[[received]] must be strictly less than [[limit]]",
		"MinLength":             "length [[received]] is less than the minimum of [[limit]]",
		"MaxLength":             "length [[received]] is greater than the maximum of [[limit]]",
		"Pattern":               "value does not match pattern [[pattern]]",
		"MinItems":              "array has [[received]] items, fewer than the minimum of [[limit]]",
		"MaxItems":              "array has [[received]] items, more than the maximum of [[limit]]",
		"UniqueItems":           "array has duplicate items at indices [[indices]]",
		"MinProperties":         "object has [[received]] properties, fewer than the minimum of [[limit]]",
		"MaxProperties":         "object has [[received]] properties, more than the maximum of [[limit]]",
		"Required":              "missing required properties: [[missing]]",
		"AdditionalProperties":  "additional properties not allowed: [[names]]",
		"AdditionalItems":       "additional items not allowed beyond index [[limit]]",
		"ContainsTooFew":        "array contains [[count]] matching items, fewer than minContains [[limit]]",
		"ContainsTooMany":       "array contains [[count]] matching items, more than maxContains [[limit]]",
		"UnevaluatedProperties": "unevaluated properties not allowed: [[names]]",
		"UnevaluatedItems":      "unevaluated items not allowed at indices [[indices]]",
		"OneOf":                 "value must match exactly one schema, matched [[count]]",
		"Not":                   "value must not match the schema",
		"DependentRequired":     "property [[property]] requires [[missing]]",
		"Format":                "value does not satisfy format [[format]]",
		"PropertyNames":         "property name [[name]] does not match propertyNames schema",
		"RefCycle":              "reference cycle detected at [[location]]",
		"RefNotFound":           "reference [[ref]] could not be resolved",
		"AnyOf":                 "value must match at least one schema",
		"BooleanFalse":          "the boolean schema false never validates",
	}
}

// Render rendering helper for a registered template.
func RenderTemplate(symbol string, tokens map[string]any) string {
	templatesMu.RLock()
	tpl, ok := templates[symbol]
	templatesMu.RUnlock()
	if !ok {
		tpl = symbol
	}
	return Render(tpl, tokens)
}

// SetTemplate overrides (or adds) the template for symbol. Safe to call
// concurrently, but intended to be called before any concurrent Evaluate
// begins (spec.md §9).
func SetTemplate(symbol, template string) {
	templatesMu.Lock()
	defer templatesMu.Unlock()
	templates[symbol] = template
}
