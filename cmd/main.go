// Command resource-editor serves edit sessions that keep Kubernetes resources editable as a form or as YAML.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "resource-editor",
	Short: "Edit Kubernetes resources as forms or YAML",
	Long: `resource-editor keeps a Kubernetes resource editable in two representations.

Commands:

  serve     run the HTTP API (operators, edit sessions, metrics)
  convert   convert a resource between YAML and its form model
  sample    print the create template of a kind

Settings are read from config.yaml and RESOURCE_EDITOR_* environment variables.
`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml, $HOME/.resource-editor/config.yaml, /etc/resource-editor/config.yaml)")
	rootCmd.AddCommand(newServeCmd(), newConvertCmd(), newSampleCmd())
}
