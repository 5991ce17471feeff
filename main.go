package main

import (
	"embed"

	"github.com/9rajputshivam/daytime-window-check/cmd"
)

//go:embed views
var embedViews embed.FS

func main() {
	cmd.Execute(embedViews)
}
