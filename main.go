package main

import (
	"github.com/daedaleanai/cbuild/cmd"
)

func main() {
	cmd.Execute()
}
