package rules

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed data
var embedded embed.FS

// Embedded returns the built-in rule tables, rooted like a rules directory.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Open returns a loader over dir, or over the built-in tables when dir is empty.
func Open(dir string) *Loader {
	if dir == "" {
		return NewLoader(Embedded())
	}
	return NewLoader(os.DirFS(dir))
}
