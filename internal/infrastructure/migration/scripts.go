package migration

import (
	"embed"
	"io/fs"
)

//go:embed scripts
var embeddedScripts embed.FS

// scriptsFS returns the bundled scripts for one tool and dialect,
// e.g. scriptsFS("goose", "sqlite").
func scriptsFS(tool, dialect string) (fs.FS, error) {
	return fs.Sub(embeddedScripts, "scripts/"+tool+"/"+dialect)
}
