package langprofile

import (
	sitter "github.com/smacker/go-tree-sitter"
	tsjs "github.com/smacker/go-tree-sitter/javascript"
)

func init() {
	must(Default.Register(&Profile{
		Name:       "javascript",
		Extensions: []string{"js", "jsx", "mjs", "cjs"},
		Lang:       func() *sitter.Language { return tsjs.GetLanguage() },
		Queries: map[string]string{
			"func": `[
				(function_declaration name: (identifier) @match)
				(method_definition name: (property_identifier) @match)
			]`,
			"class": `(class_declaration name: (identifier) @match)`,
			"import": `[
				(import_statement source: (string) @match)
			]`,
			"var": `(variable_declarator name: (identifier) @match)`,
			"call": `[
				(call_expression function: (identifier) @match)
				(call_expression function: (member_expression property: (property_identifier) @match))
			]`,
			"comment":   `(comment) @match`,
			"str":       `(string) @match`,
			"element":   `(jsx_element) @match`,
			"component": `(jsx_self_closing_element name: (identifier) @match)`,
		},
	}))
}
