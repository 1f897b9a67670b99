package main

import (
	"os"

	"github.com/sqlsift/sqlsift/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
