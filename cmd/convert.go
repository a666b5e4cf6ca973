package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resourceEditorAPI/internal/editor"
	"resourceEditorAPI/internal/i18n"
	"resourceEditorAPI/internal/notify"
	"resourceEditorAPI/internal/session"
)

type convertOptions struct {
	kind   string
	to     string
	locale string
}

func newConvertCmd() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a resource between YAML and its form model",
		Long: `Convert a resource between YAML and the JSON form model edited in form mode.

Use "-" to read from stdin. Notifications are printed to stderr.

Examples:
  resource-editor convert --kind secret secret.yaml
  resource-editor convert --kind secret --to yaml form.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return runConvert(opts, in, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&opts.kind, "kind", "", "resource kind (Secret, ConfigMap, PersistentVolumeClaim or any other)")
	cmd.Flags().StringVar(&opts.to, "to", string(editor.ModeForm), "target representation: form or yaml")
	cmd.Flags().StringVar(&opts.locale, "locale", "en", "language of notifications")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return b, nil
}

func runConvert(opts convertOptions, in []byte, stdout, stderr io.Writer) error {
	target, err := editor.ParseMode(opts.to)
	if err != nil {
		return err
	}

	rec := notify.NewRecorder(zap.NewNop())
	edOpts := editor.Options{Notifier: rec, Translator: i18n.NewCatalog("en").Translator(opts.locale)}
	defer func() {
		for _, n := range rec.Drain() {
			if n.Title != "" {
				fmt.Fprintf(stderr, "%s: %s: %s\n", n.Level, n.Title, n.Content)
				continue
			}
			fmt.Fprintf(stderr, "%s: %s\n", n.Level, n.Content)
		}
	}()

	if target == editor.ModeForm {
		form, err := session.ToForm(opts.kind, string(in), edOpts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(form))
		return err
	}

	text, err := session.ToYAML(opts.kind, in, edOpts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, text)
	return err
}
