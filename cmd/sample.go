package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resourceEditorAPI/internal/samples"
)

func newSampleCmd() *cobra.Command {
	var kind, namespace string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the create template of a kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := samples.Provider{}.Sample(kind)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), samples.FeedNamespace(text, namespace))
			return err
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "resource kind")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "default", "namespace written into the template")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}
