// Package datafiles holds files compiled into the binaries.
package datafiles

import "embed"

// Templates holds the html/template files used by the web frontend.
//
//go:embed index.html
var Templates embed.FS
