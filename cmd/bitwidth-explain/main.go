package main

import (
	"os"

	"github.com/avdva/bitlogic/cmd/bitwidth-explain/cmd"
	"github.com/avdva/bitlogic/internal/cmdutil"
)

func main() {
	cmd.Cmd.SetOut(os.Stdout)
	os.Exit(cmdutil.Execute(cmd.Cmd, os.Args[1:]))
}
