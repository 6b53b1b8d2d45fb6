package main

import (
	"github.com/valkyrdb/rowwire/cmd/rowwire/cmd"
)

func main() {
	cmd.Execute()
}
