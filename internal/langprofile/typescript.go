package langprofile

import (
	sitter "github.com/smacker/go-tree-sitter"
	tstsx "github.com/smacker/go-tree-sitter/typescript/tsx"
)

func init() {
	must(Default.Register(&Profile{
		Name:       "typescript",
		Extensions: []string{"ts", "tsx"},
		// The tsx grammar is a strict superset of typescript's for rdump's
		// purposes -- it parses plain .ts files identically and additionally
		// exposes the JSX node types the React-oriented predicates need
		// (spec.md §4.5: "profiles for languages whose syntax trees include
		// JSX/TSX nodes"), so one profile covers both extensions.
		Lang: func() *sitter.Language { return tstsx.GetLanguage() },
		Queries: map[string]string{
			"func": `[
				(function_declaration name: (identifier) @match)
				(method_definition name: (property_identifier) @match)
			]`,
			"class":     `(class_declaration name: (type_identifier) @match)`,
			"interface": `(interface_declaration name: (type_identifier) @match)`,
			"type":      `(type_alias_declaration name: (type_identifier) @match)`,
			"import":    `(import_statement source: (string) @match)`,
			"var":       `(variable_declarator name: (identifier) @match)`,
			"call": `[
				(call_expression function: (identifier) @match)
				(call_expression function: (member_expression property: (property_identifier) @match))
			]`,
			"comment": `(comment) @match`,
			"str":     `(string) @match`,

			// React-oriented predicates: only JSX/TSX-capable syntax trees
			// have the node types to answer them. This profile has all
			// five; the javascript profile (whose grammar also parses JSX)
			// has element and component.
			"element":   `(jsx_element) @match`,
			"component": `[
				(jsx_self_closing_element name: (identifier) @match)
				(jsx_opening_element name: (identifier) @match)
			]`,
			"hook": `(call_expression function: (identifier) @match (#match? @match "^use[A-Z0-9]"))`,
			"customhook": `(function_declaration name: (identifier) @match (#match? @match "^use[A-Z0-9]"))`,
			"prop": `(jsx_attribute (property_identifier) @match)`,
		},
	}))
}
