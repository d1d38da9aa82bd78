package gallery

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartgallery/smartgallery/internal/app"
	"github.com/smartgallery/smartgallery/internal/config"
	"github.com/smartgallery/smartgallery/pkg/db/store"
)

// runWithApp loads the configuration, opens the application and guarantees
// cleanup once the command body returns.
func runWithApp(run func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		a := app.New(cfg)
		ctx := cmd.Context()
		if err := a.Open(ctx); err != nil {
			return err
		}
		defer a.Close()

		return run(ctx, a, cmd, args)
	}
}

func parseOrder(order string) store.SortOrder {
	if strings.HasPrefix(strings.ToLower(order), "asc") {
		return store.OrderOldestFirst
	}
	return store.OrderNewestFirst
}

func parseImageID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid image id %q", arg)
	}
	return uint(id), nil
}
