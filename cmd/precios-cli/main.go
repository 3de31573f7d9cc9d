package main

import (
	"github.com/franruiloz-lab/precios-almendra/cmd/precios-cli/commands"
	"github.com/franruiloz-lab/precios-almendra/lib/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	commands.ExecuteContext(ctx)
}
