package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/studio"
	"github.com/spf13/cobra"
)

func reportImages(w io.Writer, out string, images ...genstudio.Image) error {
	paths, err := writeImages(out, images)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}

func imageCmd(a *app) *cobra.Command {
	var (
		ratio string
		count int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "image [prompt]",
		Short: "Generate images from a text prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			images, err := c.TextToImage(cmd.Context(), args[0], genstudio.AspectRatio(ratio), count)
			if err != nil {
				return err
			}
			return reportImages(cmd.OutOrStdout(), out, images...)
		},
	}
	cmd.Flags().StringVar(&ratio, "ratio", "1:1", "aspect ratio (1:1, 16:9, 9:16, 4:3)")
	cmd.Flags().IntVar(&count, "count", 1, fmt.Sprintf("number of images (1-%d)", studio.MaxImages))
	cmd.Flags().StringVarP(&out, "out", "o", "image", "output file name")
	return cmd
}

// editOps are the single-image edit operations selectable with --op.
var editOps = []string{"edit", "remove-bg", "restore", "upscale"}

func editCmd(a *app) *cobra.Command {
	var (
		op  string
		out string
	)
	cmd := &cobra.Command{
		Use:   "edit [image] [instruction]",
		Short: "Edit an image (--op edit, remove-bg, restore or upscale)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readImage(args[0])
			if err != nil {
				return err
			}
			if op == "edit" && len(args) < 2 {
				return fmt.Errorf("edit needs an instruction")
			}

			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			var img genstudio.Image
			switch op {
			case "edit":
				img, err = c.EditImage(ctx, src, args[1])
			case "remove-bg":
				img, err = c.RemoveBackground(ctx, src)
			case "restore":
				img, err = c.RestorePhoto(ctx, src)
			case "upscale":
				img, err = c.Upscale(ctx, src)
			default:
				return fmt.Errorf("unknown --op %q (must be one of %s)", op, strings.Join(editOps, ", "))
			}
			if err != nil {
				return err
			}
			return reportImages(cmd.OutOrStdout(), out, img)
		},
	}
	cmd.Flags().StringVar(&op, "op", "edit", "operation: "+strings.Join(editOps, ", "))
	cmd.Flags().StringVarP(&out, "out", "o", "edited", "output file name")
	return cmd
}

func variationsCmd(a *app) *cobra.Command {
	var (
		count int
		scene string
		ratio string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "variations [image] [instruction]",
		Short: "Produce several edits of an image, or a product photoshoot with --scene",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readImage(args[0])
			if err != nil {
				return err
			}

			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var images []genstudio.Image
			if scene != "" {
				images, err = c.ProductPhotoshoot(cmd.Context(), src, scene, genstudio.AspectRatio(ratio), count)
			} else {
				if len(args) < 2 {
					return fmt.Errorf("variations need an instruction or --scene")
				}
				images, err = c.EditImageVariations(cmd.Context(), src, args[1], count)
			}
			if err != nil {
				return err
			}
			if len(images) < count {
				a.logger.Warn("some variations failed", "requested", count, "produced", len(images))
			}
			return reportImages(cmd.OutOrStdout(), out, images...)
		},
	}
	cmd.Flags().IntVar(&count, "count", 2, "number of variations")
	cmd.Flags().StringVar(&scene, "scene", "", "place the product in this scene")
	cmd.Flags().StringVar(&ratio, "ratio", "1:1", "aspect ratio for --scene")
	cmd.Flags().StringVarP(&out, "out", "o", "variation", "output file name")
	return cmd
}

func promptCmd(a *app) *cobra.Command {
	var wish string
	cmd := &cobra.Command{
		Use:   "prompt [image]",
		Short: "Write a bilingual video prompt from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readImage(args[0])
			if err != nil {
				return err
			}

			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			prompt, err := c.PromptFromImage(cmd.Context(), src, wish)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), prompt)
		},
	}
	cmd.Flags().StringVar(&wish, "wish", "", "idea to work into the prompt")
	return cmd
}

func scriptCmd(a *app) *cobra.Command {
	var (
		req    studio.ScriptRequest
		images []string
		adCopy bool
	)
	cmd := &cobra.Command{
		Use:   "script [product name]",
		Short: "Write a short video ad script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ProductName = args[0]
			for _, path := range images {
				img, err := readImage(path)
				if err != nil {
					return err
				}
				req.Images = append(req.Images, img)
			}

			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			script, err := c.VideoScript(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), script); err != nil {
				return err
			}
			if !adCopy {
				return nil
			}
			copyText, err := c.AdCopy(cmd.Context(), script, req.Language)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), copyText)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.ProductInfo, "info", "", "product description")
	f.StringVar(&req.Industry, "industry", "", "industry")
	f.StringVar(&req.BrandTone, "tone", "friendly", "brand tone")
	f.StringVar(&req.TargetAudience, "audience", "", "target audience")
	f.StringVar(&req.CTA, "cta", "", "call to action")
	f.IntVar(&req.Scenes, "scenes", 3, "exact number of scenes")
	f.StringVar(&req.Language, "language", "", "script language (default Vietnamese)")
	f.StringSliceVar(&images, "image", nil, "product image (repeatable)")
	f.BoolVar(&adCopy, "ad-copy", false, "also write social media ad copy")
	return cmd
}

func translateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text to English",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			out, err := c.Translate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func speakCmd(a *app) *cobra.Command {
	var (
		voice string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Synthesize speech into a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			wav, err := c.SpeechWAV(cmd.Context(), args[0], voice)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, wav, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&voice, "voice", studio.DefaultVoice, "prebuilt voice name")
	cmd.Flags().StringVarP(&out, "out", "o", "speech.wav", "output file")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
