package main

import (
	"github.com/deploymenttheory/go-wim/cmd"
)

func main() {
	cmd.Execute()
}
