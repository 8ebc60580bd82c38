// Package wikitext provides the raw-markup primitives the checker builds on:
// a template scanner and the field value normalizers.
//
// # Template Scanner
//
// ParseTemplates walks a page's wikitext and returns every template it can
// find as an ordered (name, parameter map) pair, including templates nested
// inside the parameter values of other templates. The English Chembox keeps
// its identifiers and properties in nested section templates, so nested
// extraction is load-bearing, not a nicety.
//
// # Normalizers
//
// CleanMarkup strips the noise that routinely wraps infobox values
// (references, comments, the {{val}} formatting template). NormalizeIdentifier
// and NormalizeText build on it for the two value kinds the checker compares;
// ExtractNumbers pulls the numeric tokens out of a physical-property value.
package wikitext
