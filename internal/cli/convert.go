package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoninvert/pkg/config"
	errs "github.com/matzehuels/jsoninvert/pkg/errors"
	"github.com/matzehuels/jsoninvert/pkg/invert"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var indent int

	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Swap the keys and values of a JSON object file",
		Long: `Swap the keys and values of a JSON object file.

The input must contain a single JSON object. Each value becomes a key of the
output object and maps back to its original key. Strings are used as-is,
numbers keep their literal text, true/false/null become "true", "false" and
"null", and nested objects or arrays are used as compact JSON text.

When several entries share a value, the last one wins and a warning names
the duplicated value.

The input and output default to lables.json and reversed.json, or to the
paths set in the config file. The output is replaced atomically and is never
touched when the conversion fails.`,
		Example: `  jsoninvert convert
  jsoninvert convert labels.json
  jsoninvert convert labels.json inverted.json --indent 2`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if len(args) > 0 {
				cfg.Input = args[0]
			}
			if len(args) > 1 {
				cfg.Output = args[1]
			}
			if cmd.Flags().Changed("indent") {
				cfg.Indent = indent
			}
			return c.runConvert(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&indent, "indent", invert.DefaultIndent, "spaces per indentation level in the output (0-16)")

	return cmd
}

// runConvert inverts cfg.Input into cfg.Output and prints the diagnostics.
func (c *CLI) runConvert(ctx context.Context, cfg config.Config) error {
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	c.Logger.Debug("converting", "input", cfg.Input, "output", cfg.Output, "indent", cfg.Indent)

	prog := newProgress(c.Logger)
	opts := invert.Options{Indent: cfg.Indent, Logger: c.Logger}

	res, err := invert.NewConverter(c.Fs).Convert(ctx, cfg.Input, cfg.Output, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.printError("%s", failureMessage(err, cfg.Input))
		return ErrReported
	}

	for _, col := range res.Collisions {
		c.printWarning("Value %q appears more than once, %q overwrites %q", col.Key, col.Current, col.Previous)
	}
	c.printSuccess("Inverted JSON saved to %s", StyleHighlight.Render(res.Output))
	if keys := res.CollisionKeys(); len(keys) > 0 {
		c.printWarning("Duplicate values detected: %s (earlier entries were overwritten)", quoteList(keys))
	}

	prog.done(fmt.Sprintf("Converted %d entries into %d keys", res.Entries, res.Keys))
	return nil
}

// failureMessage renders a conversion error as a single diagnostic line.
func failureMessage(err error, input string) string {
	switch errs.Category(err) {
	case errs.KindNotFound:
		return fmt.Sprintf("File not found: %s", input)
	case errs.KindParse:
		return fmt.Sprintf("%s is not valid JSON", input)
	case errs.KindShape:
		return fmt.Sprintf("Type mismatch in %s: %s", input, errs.UserMessage(err))
	default:
		return fmt.Sprintf("Conversion failed for %s: %s", input, detail(err))
	}
}

// detail returns the user message of err followed by its cause, if any.
func detail(err error) string {
	var e *errs.Error
	if errors.As(err, &e) && e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, errs.UserMessage(e.Cause))
	}
	return errs.UserMessage(err)
}
