package gallery

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartgallery/smartgallery/internal/app"
)

func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show image details",
		Long:  "Show the stored metadata and tags of a single image.",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			imageID, err := parseImageID(args[0])
			if err != nil {
				return err
			}

			details, err := a.Gallery().Details(ctx, imageID)
			if err != nil {
				return err
			}
			if details == nil {
				return fmt.Errorf("image %d not found", imageID)
			}

			fmt.Printf("id:          %d\n", details.Image.ID)
			fmt.Printf("path:        %s\n", details.Image.Path)
			fmt.Printf("description: %s\n", details.Image.Description)
			fmt.Printf("processed:   %t\n", details.Image.Processed)
			fmt.Printf("created:     %s\n", details.Image.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("tags:        %s\n", strings.Join(details.Tags, ", "))

			return nil
		}),
	}

	return cmd
}
