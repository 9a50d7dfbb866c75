package main

import (
	"github.com/usptact/BCCWords/bcc-golib/cmdline"
)

func main() {
	cmdline.MustDispatch(inferCmd, evalCmd)
}
