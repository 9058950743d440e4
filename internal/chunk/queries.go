package chunk

import "github.com/Demwunz/topo/internal/model"

// astQueries holds one capture query per AST-backed language, using the
// standardized capture names @function, @type, @impl, @import, @name
// (§4.2). Only languages with a bound grammar get an entry; everything
// else falls back to the regex backend.
var astQueries = map[model.Language]string{
	model.LangRust: `
(function_item name: (identifier) @name) @function
(struct_item name: (type_identifier) @name) @type
(enum_item name: (type_identifier) @name) @type
(trait_item name: (type_identifier) @name) @type
(type_item name: (type_identifier) @name) @type
(impl_item) @impl
(use_declaration) @import
`,
	model.LangPython: `
(function_definition name: (identifier) @name) @function
(class_definition name: (identifier) @name) @type
(import_statement) @import
(import_from_statement) @import
`,
	model.LangTypeScript: `
(function_declaration name: (identifier) @name) @function
(class_declaration name: (type_identifier) @name) @type
(method_definition name: (property_identifier) @name) @function
(interface_declaration name: (type_identifier) @name) @type
(type_alias_declaration name: (type_identifier) @name) @type
(enum_declaration name: (identifier) @name) @type
(import_statement) @import
`,
	model.LangJava: `
(class_declaration name: (identifier) @name) @type
(interface_declaration name: (identifier) @name) @type
(enum_declaration name: (identifier) @name) @type
(method_declaration name: (identifier) @name) @function
(constructor_declaration name: (identifier) @name) @function
(import_declaration) @import
`,
	model.LangRuby: `
(method name: (identifier) @name) @function
(singleton_method name: (identifier) @name) @function
(class name: (constant) @name) @type
(module name: (constant) @name) @type
(call method: (identifier) @name) @import
`,
	model.LangC: `
(function_definition declarator: (function_declarator declarator: (identifier) @name)) @function
(struct_specifier name: (type_identifier) @name) @type
(enum_specifier name: (type_identifier) @name) @type
(union_specifier name: (type_identifier) @name) @type
(type_definition declarator: (type_identifier) @name) @type
(preproc_include) @import
`,
	model.LangPHP: `
(function_definition name: (name) @name) @function
(method_declaration name: (name) @name) @function
(class_declaration name: (name) @name) @type
(interface_declaration name: (name) @name) @type
(trait_declaration name: (name) @name) @type
(enum_declaration name: (name) @name) @type
(namespace_use_declaration) @import
`,
}
