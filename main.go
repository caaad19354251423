package main

import (
	cmd "github.com/medctx/medctx/cmd/medctx"
	"github.com/medctx/medctx/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting medctx")
	cmd.Execute()
}
