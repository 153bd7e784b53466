package main

import (
	"github.com/bstardust/geophoto/pkg/cli"
)

func main() {
	cli.Execute()
}
