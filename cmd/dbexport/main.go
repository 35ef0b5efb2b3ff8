// Command dbexport prints the SQL statements that extract a database export.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/dbexport/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
