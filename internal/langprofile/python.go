package langprofile

import (
	sitter "github.com/smacker/go-tree-sitter"
	tspython "github.com/smacker/go-tree-sitter/python"
)

func init() {
	must(Default.Register(&Profile{
		Name:       "python",
		Extensions: []string{"py"},
		Lang:       func() *sitter.Language { return tspython.GetLanguage() },
		Queries: map[string]string{
			"func":  `(function_definition name: (identifier) @match)`,
			"def":   `(function_definition name: (identifier) @match)`,
			"class": `(class_definition name: (identifier) @match)`,
			"import": `[
				(import_statement name: (dotted_name) @match)
				(import_from_statement module_name: (dotted_name) @match)
			]`,
			"decorator": `(decorator (identifier) @match)`,
			"call": `[
				(call function: (identifier) @match)
				(call function: (attribute attribute: (identifier) @match))
			]`,
			"comment": `(comment) @match`,
			"str":     `(string) @match`,
		},
	}))
}
