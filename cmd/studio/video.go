package main

import (
	"fmt"
	"os"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/studio"
	"github.com/spf13/cobra"
)

func videoCmd(a *app) *cobra.Command {
	var (
		style string
		ratio string
		image string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "video [prompt]",
		Short: "Generate a video and wait for it to finish",
		Long: "Generate a video and wait for it to finish. The job is not saved: " +
			"interrupting the command abandons it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := readOptionalImage(image)
			if err != nil {
				return err
			}

			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			op, err := c.StartVideo(cmd.Context(), studio.VideoRequest{
				Prompt: args[0],
				Style:  style,
				Ratio:  genstudio.AspectRatio(ratio),
				Image:  seed,
			})
			if err != nil {
				return err
			}
			a.logger.Info("video generation started", "operation", op.Name)

			result, err := c.WaitVideo(cmd.Context(), op)
			if err != nil {
				return err
			}
			if len(result.Data) > 0 && out != "" {
				if err := os.WriteFile(out, result.Data, 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			// The URI needs the API key appended as ?key= to download.
			fmt.Fprintln(cmd.OutOrStdout(), result.URI)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "visual style, e.g. cinematic")
	cmd.Flags().StringVar(&ratio, "ratio", "16:9", "aspect ratio (16:9 or 9:16)")
	cmd.Flags().StringVar(&image, "image", "", "first-frame image")
	cmd.Flags().StringVarP(&out, "out", "o", "video.mp4", "output file when the video is returned inline")
	return cmd
}
