package skilltree

import (
	_ "embed"
)

// Version is the library and CLI version.
//
//go:embed VERSION
var Version string
