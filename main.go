package main

import (
	"github.com/tunnelvision/tunnelvision/cmd"
)

func main() {
	cmd.Execute()
}
