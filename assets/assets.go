// Package assets bundles static resources that ship inside the binary.
package assets

import _ "embed"

// Logo is the default brand mark drawn in the ticket header.
//
//go:embed logo.png
var Logo []byte
