package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/medctx/medctx/config"
	"github.com/medctx/medctx/internal"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
	generateKey bool
	requestPath string
)

var cmd = &cobra.Command{
	Use:   "medctx",
	Short: "medctx enriches clinical annotations with negation, uncertainty, historicity and subject context",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var dumpJSONSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for medctx's configuration file",
	Example: "medctx json-schema > medctx_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

var processCmd = &cobra.Command{
	Use:     "process",
	Short:   "Runs a single process request through the NLP server and prints the response",
	Example: "medctx process -f request.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		return processFile(cmd.Context(), requestPath, cmd.OutOrStdout())
	},
}

func init() {
	cmd.AddCommand(dumpJSONSchemaCmd)
	cmd.AddCommand(processCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
	cmd.PersistentFlags().
		BoolVarP(&generateKey, "generate-token", "g", false, "generate a new JWT token")

	processCmd.Flags().
		StringVarP(&requestPath, "file", "f", "-", "Path to a JSON process request, - for stdin")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
