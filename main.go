package main

import (
	"github.com/gee-community/eeconv/cmd"
)

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
