package asset

import (
	"embed"
	"io/fs"
	"os"

	"github.com/tomz197/vrarcade/internal/audio"
)

//go:embed data
var data embed.FS

// DefaultFS returns the assets bundled with the binary.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(data, "data")
	if err != nil {
		panic(err) // the embed directive guarantees the directory
	}
	return sub
}

// FS returns os.DirFS(dir), or the bundled assets when dir is empty.
func FS(dir string) fs.FS {
	if dir == "" {
		return DefaultFS()
	}
	return os.DirFS(dir)
}

// NewDefaultStore wires the glTF and WAV loaders over fsys with the default manifest.
func NewDefaultStore(fsys fs.FS, backend audio.Backend, opts Options, onLoaded func(*Store, error)) *Store {
	if backend == nil {
		backend = &audio.Silent{}
	}
	opts.Manifest = DefaultManifest()
	opts.Backend = backend
	opts.Scene = GLTFLoader{FS: fsys, Path: opts.Manifest.Scene}
	opts.Sound = WAVLoader{FS: fsys, Rate: backend.SampleRate()}
	return NewStore(opts, onLoaded)
}
