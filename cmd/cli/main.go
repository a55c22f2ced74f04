package main

import (
	"github.com/timing-report/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
