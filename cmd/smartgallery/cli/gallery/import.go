package gallery

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartgallery/smartgallery/internal/app"
)

func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import images into the gallery",
		Long:  "Register image files, caption them through the analysis gateway and store the resulting description and tags.",
		Args:  cobra.MinimumNArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			paths := make([]string, 0, len(args))
			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("failed to resolve path %s: %w", arg, err)
				}
				paths = append(paths, path)
			}

			results, err := a.Gallery().Import(ctx, paths)
			if err != nil {
				return err
			}

			for _, result := range results {
				fmt.Printf("%d  %s\n", result.ImageID, result.Path)
				fmt.Printf("    %s\n", result.Description)
				if len(result.Tags) > 0 {
					fmt.Printf("    tags: %s\n", strings.Join(result.Tags, ", "))
				}
			}

			return nil
		}),
	}

	return cmd
}
