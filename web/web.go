// Package web embeds the printable document templates served by the HTTP adapter.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
