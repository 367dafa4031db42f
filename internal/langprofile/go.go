package langprofile

import (
	sitter "github.com/smacker/go-tree-sitter"
	tsgo "github.com/smacker/go-tree-sitter/golang"
)

func init() {
	must(Default.Register(&Profile{
		Name:       "go",
		Extensions: []string{"go"},
		Lang:       func() *sitter.Language { return tsgo.GetLanguage() },
		Queries: map[string]string{
			"func": `[
				(function_declaration name: (identifier) @match)
				(method_declaration name: (field_identifier) @match)
			]`,
			"struct": `(type_spec name: (type_identifier) @match type: (struct_type))`,
			"interface": `(type_spec name: (type_identifier) @match type: (interface_type))`,
			"type":   `(type_spec name: (type_identifier) @match)`,
			"import": `(import_spec path: (interpreted_string_literal) @match)`,
			"var": `[
				(var_spec name: (identifier) @match)
				(short_var_declaration left: (expression_list (identifier) @match))
			]`,
			"const": `(const_spec name: (identifier) @match)`,
			"call": `[
				(call_expression function: (identifier) @match)
				(call_expression function: (selector_expression field: (field_identifier) @match))
			]`,
			"field":   `(field_declaration name: (field_identifier) @match)`,
			"comment": `(comment) @match`,
			"str":     `(interpreted_string_literal) @match`,
		},
	}))
}
