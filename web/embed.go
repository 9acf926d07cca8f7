// Package web contiene las plantillas HTML y los archivos estáticos embebidos en el binario.
package web

import (
	"embed"
	"io/fs"
)

//go:embed views public
var files embed.FS

// Views plantillas (*.html) para el motor gofiber/template/html.
func Views() fs.FS {
	sub, err := fs.Sub(files, "views")
	if err != nil {
		panic(err)
	}
	return sub
}

// Public archivos estáticos servidos bajo /static.
func Public() fs.FS {
	sub, err := fs.Sub(files, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
