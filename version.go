package silo

import _ "embed"

// Version is the current release, embedded from the VERSION file so the
// binary and the library always agree.
//
//go:embed VERSION
var Version string
