// Package scaffold provides the embedded site skeleton created by
// "swiftdaddy new".
package scaffold

import "embed"

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix; gitignore is
// written as .gitignore.
//
//go:embed all:templates
var Templates embed.FS
