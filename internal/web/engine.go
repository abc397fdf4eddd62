// Package web embeds the HTML templates for the server-rendered pages.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*
var templatesFS embed.FS

// Engine returns the template engine backed by the embedded templates.
// Template names are relative to the templates directory, e.g. "index"
// or "layouts/main".
func Engine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("pages", func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	})
	return engine
}
