package langprofile

import (
	sitter "github.com/smacker/go-tree-sitter"
	tsrust "github.com/smacker/go-tree-sitter/rust"
)

func init() {
	must(Default.Register(&Profile{
		Name:       "rust",
		Extensions: []string{"rs"},
		Lang:       func() *sitter.Language { return tsrust.GetLanguage() },
		Queries: map[string]string{
			"func":  `(function_item name: (identifier) @match)`,
			"struct": `(struct_item name: (type_identifier) @match)`,
			"enum":   `(enum_item name: (type_identifier) @match)`,
			"trait":  `(trait_item name: (type_identifier) @match)`,
			"impl": `[
				(impl_item trait: (type_identifier) @match)
				(impl_item type: (type_identifier) @match)
			]`,
			"type": `(type_item name: (type_identifier) @match)`,
			// crate paths are emitted as use_declaration; @match captures
			// the full dotted path, which the engine normalizes (:: -> .)
			// before comparing against the predicate value (spec.md §4.5).
			"import": `(use_declaration argument: (_) @match)`,
			"const":  `(const_item name: (identifier) @match)`,
			"field":  `(field_declaration name: (field_identifier) @match)`,
			"call": `[
				(call_expression function: (identifier) @match)
				(call_expression function: (field_expression field: (field_identifier) @match))
				(call_expression function: (scoped_identifier name: (identifier) @match))
			]`,
			"macro":   `(macro_invocation macro: (identifier) @match)`,
			"comment": `(line_comment) @match`,
			"str":     `(string_literal) @match`,
		},
	}))
}
