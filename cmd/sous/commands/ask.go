package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/socialchef/sous/internal/api"
	"github.com/socialchef/sous/internal/ingredients"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <food>",
		Short: "Print a recipe and its ingredient table",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
	cmd.Flags().StringP("format", "f", formatText, "output format: text or json")
	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	format, _ := cmd.Flags().GetString("format")
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	cfg, err := loadConfig(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	svc, err := ingredients.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	return ask(ctx, svc, strings.Join(args, " "), format, cmd.OutOrStdout())
}

func ask(ctx context.Context, svc api.Asker, food, format string, out io.Writer) error {
	res, err := svc.Ask(ctx, food)
	if err != nil {
		return err
	}

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(api.IngredientsResponse{
			QueryID:     res.QueryID,
			Food:        res.Food,
			Recipe:      res.Recipe,
			Ingredients: api.NewTableResponse(res.Ingredients),
		})
	}
	return writeText(out, res)
}

func writeText(out io.Writer, res *ingredients.Result) error {
	fmt.Fprintf(out, "Recipe: %s\n\n%s\n\nIngredients\n\n", res.Food, strings.TrimSpace(res.Recipe))

	if res.Ingredients.IsEmpty() {
		_, err := fmt.Fprintln(out, "(no ingredient list could be extracted)")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Ingredients.Columns, "\t"))
	for _, record := range res.Ingredients.Records() {
		cells := make([]string, len(record))
		for i, v := range record {
			cells[i] = cellText(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return fmt.Sprintf("%g", val)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

var _ api.Asker = (*ingredients.Service)(nil)
