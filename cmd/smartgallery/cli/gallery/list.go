package gallery

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartgallery/smartgallery/internal/app"
	gal "github.com/smartgallery/smartgallery/internal/gallery"
)

func NewListCommand() *cobra.Command {
	var limit int
	var offset int
	var order string
	var byFolder bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List gallery images",
		Long:  "List gallery images ordered by creation time, optionally grouped by their parent folder.",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			images, err := a.Store().ListImages(ctx, limit, offset, parseOrder(order))
			if err != nil {
				return err
			}

			if len(images) == 0 {
				fmt.Println("No images yet")
				return nil
			}

			if byFolder {
				for _, group := range gal.GroupByFolder(images) {
					fmt.Printf("%s:\n", group.Folder)
					for _, image := range group.Images {
						fmt.Printf("  %d  %s\n", image.ID, image.Path)
					}
				}
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
	cmd.Flags().BoolVar(&byFolder, "by-folder", false, "group images by parent folder")

	return cmd
}
