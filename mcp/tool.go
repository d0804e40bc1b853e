// Package mcp exposes the studio operations as MCP (Model Context Protocol)
// tools, so MCP clients can generate and edit images, write prompts and
// scripts, and synthesize speech through the rotating key pool.
//
// Images are exchanged as base64 data URLs on input and as MCP image content
// on output. Failures are reported as tool errors carrying the user-facing
// message, never as protocol errors.
//
//	c, _ := client.New(client.Config{DBPath: "studio.db"})
//	if err := mcp.ServeStdio(c); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/studio"
)

// Tool names.
const (
	ToolTextToImage      = "text_to_image"
	ToolEditImage        = "edit_image"
	ToolRemoveBackground = "remove_background"
	ToolPromptFromImage  = "prompt_from_image"
	ToolTranslate        = "translate"
	ToolVideoScript      = "video_script"
	ToolSpeak            = "speak"
)

var aspectRatios = []string{
	genstudio.AspectSquare.String(),
	genstudio.AspectWide.String(),
	genstudio.AspectTall.String(),
	genstudio.AspectLandscape.String(),
}

func imageParam() mcp.ToolOption {
	return mcp.WithString("image", mcp.Required(), mcp.Description("Source image as a base64 data URL (data:image/png;base64,...)"))
}

func textToImageTool() mcp.Tool {
	return mcp.NewTool(ToolTextToImage,
		mcp.WithDescription("Generate photorealistic images from a text description"),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("What the image should show")),
		mcp.WithString("aspect_ratio", mcp.Enum(aspectRatios...), mcp.Description("Output aspect ratio, default 1:1")),
		mcp.WithNumber("count", mcp.Min(1), mcp.Max(studio.MaxImages), mcp.Description("Number of images, default 1")),
	)
}

func editImageTool() mcp.Tool {
	return mcp.NewTool(ToolEditImage,
		mcp.WithDescription("Edit an image following a natural language instruction"),
		imageParam(),
		mcp.WithString("instruction", mcp.Required(), mcp.Description("The edit to apply")),
	)
}

func removeBackgroundTool() mcp.Tool {
	return mcp.NewTool(ToolRemoveBackground,
		mcp.WithDescription("Isolate the subject of an image on a transparent background"),
		imageParam(),
	)
}

func promptFromImageTool() mcp.Tool {
	return mcp.NewTool(ToolPromptFromImage,
		mcp.WithDescription("Write a video generation prompt, in Vietnamese and English, describing an image"),
		imageParam(),
		mcp.WithString("wish", mcp.Description("Optional idea to work into the prompt")),
	)
}

func translateTool() mcp.Tool {
	return mcp.NewTool(ToolTranslate,
		mcp.WithDescription("Translate text to English"),
		mcp.WithString("text", mcp.Required()),
	)
}

func videoScriptTool() mcp.Tool {
	return mcp.NewTool(ToolVideoScript,
		mcp.WithDescription("Write a short video ad script as JSON"),
		mcp.WithString("product_name", mcp.Required()),
		mcp.WithString("product_info", mcp.Description("Product description")),
		mcp.WithString("industry"),
		mcp.WithString("brand_tone", mcp.Description("For example playful, luxurious, trustworthy")),
		mcp.WithString("target_audience"),
		mcp.WithString("cta", mcp.Description("Call to action")),
		mcp.WithNumber("scenes", mcp.Required(), mcp.Min(1), mcp.Description("Exact number of scenes")),
		mcp.WithString("language", mcp.Description("Script language, default Vietnamese")),
	)
}

func speakTool() mcp.Tool {
	return mcp.NewTool(ToolSpeak,
		mcp.WithDescription("Synthesize speech and return it as WAV audio"),
		mcp.WithString("text", mcp.Required()),
		mcp.WithString("voice", mcp.Description("Prebuilt voice name, default "+studio.DefaultVoice)),
	)
}
