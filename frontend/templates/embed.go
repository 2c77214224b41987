// Package templates embeds the page templates and static documents of the frontend.
package templates

import "embed"

//go:embed *.html *.md
var FS embed.FS
