package gallery

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartgallery/smartgallery/internal/app"
)

func NewRetagCommand() *cobra.Command {
	var description string
	var tags []string

	cmd := &cobra.Command{
		Use:   "retag <id>",
		Short: "Update image description and tags",
		Long:  "Overwrite the description of an image and replace its tag set. The previous tag associations are cleared and the given tags linked in their place.",
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

			// Keep the stored description unless the flag was given
			if !cmd.Flags().Changed("description") {
				description = details.Image.Description
			}

			if err := a.Gallery().Retag(ctx, imageID, description, tags); err != nil {
				return err
			}

			fmt.Printf("Updated image %d\n", imageID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&description, "description", "", "new description for the image")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag to link (repeatable, replaces the existing set)")

	return cmd
}
