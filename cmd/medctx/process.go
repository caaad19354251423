package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/medctx/medctx/config"
	"github.com/medctx/medctx/pkg/models"
	"github.com/medctx/medctx/pkg/reconcile"
)

// processFile loads the config, builds the context model and runs the request stored at
// path (or stdin for "-") through it, writing the response JSON to out.
func processFile(ctx context.Context, path string, out io.Writer) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error configuring medctx: %w", err)
	}
	config.SetLogLevel(cfg)

	appState, err := NewAppState(cfg)
	if err != nil {
		return err
	}

	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	return processRequest(ctx, appState.ContextModel, in, out)
}

func processRequest(
	ctx context.Context,
	model models.ContextModel,
	in io.Reader,
	out io.Writer,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	request, err := models.DecodeProcessRequest(in)
	if err != nil {
		return err
	}

	response, err := reconcile.Process(ctx, model, request)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}
