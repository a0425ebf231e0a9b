// Package web holds the single-page mask painter served at "/".
package web

import _ "embed"

//go:embed index.html
var Page []byte
