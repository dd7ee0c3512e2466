// Package render lays out a layout.Document onto PDF pages with gofpdf.
//
// Fonts, sizes and spacing come from a StyleSheet parsed from YAML. A sheet
// defines named styles (Normal, Title, Heading1-Heading6, Code); a style may
// name a parent and inherits every field it leaves unset. Styles missing from
// a sheet fall back to Normal.
//
// The sheet and the gofpdf document are rebuilt on every Render call, so a
// Renderer carries no state between documents.
package render
