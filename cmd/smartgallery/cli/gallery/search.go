package gallery

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartgallery/smartgallery/internal/app"
)

func NewSearchCommand() *cobra.Command {
	var limit int
	var offset int
	var order string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search gallery images",
		Long:  "Search images whose description or any tag name contains the query as a case-insensitive substring.",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			images, err := a.Gallery().Browse(ctx, args[0], limit, offset, parseOrder(order))
			if err != nil {
				return err
			}

			if len(images) == 0 {
				fmt.Println("No images match your search")
				return nil
			}

			for _, image := range images {
				tags, err := a.Store().TagsForImage(ctx, image.ID)
				if err != nil {
					return err
				}

				fmt.Printf("%d  %s\n", image.ID, image.Path)
				if image.Description != "" {
					fmt.Printf("    %s\n", image.Description)
				}
				if len(tags) > 0 {
					fmt.Printf("    tags: %s\n", strings.Join(tags, ", "))
				}
			}

			return nil
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of images to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of images to skip")
	cmd.Flags().StringVar(&order, "order", "desc", "sort order (desc = newest first, asc = oldest first)")

	return cmd
}
