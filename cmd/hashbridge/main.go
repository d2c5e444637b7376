// Command hashbridge prints digests of files or standard input, driving hash sessions through the bridge the way an
// embedding host does.
package main

import (
	"os"

	"github.com/codahale/hashbridge/internal/cli"
)

func main() {
	cmd := cli.NewOSCommand()
	os.Exit(cli.ExitCode(cmd.Run(os.Args[1:])))
}
