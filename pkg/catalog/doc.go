// Package catalog describes resolver rules as data.
//
// A Catalog is an ordered list of entries, each naming a code, an optional
// context, the tier it belongs to and a text/template message. Templates are
// executed against a view of the error:
//
//	{{.Code}} {{.Context}} {{.Message}} {{.Meta "Field"}}
//
// Catalogs are read from and written to YAML.
package catalog
