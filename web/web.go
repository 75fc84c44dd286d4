// Package web embeds the HTML templates and static assets of the dashboard.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS
