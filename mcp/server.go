package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/studio"
)

// Studio is the set of operations served as tools. *studio.Service and
// *client.Client satisfy it.
type Studio interface {
	TextToImage(ctx context.Context, prompt string, ratio genstudio.AspectRatio, count int) ([]genstudio.Image, error)
	EditImage(ctx context.Context, src genstudio.Image, instruction string) (genstudio.Image, error)
	RemoveBackground(ctx context.Context, src genstudio.Image) (genstudio.Image, error)
	PromptFromImage(ctx context.Context, src genstudio.Image, wish string) (studio.BilingualPrompt, error)
	Translate(ctx context.Context, text string) (string, error)
	VideoScript(ctx context.Context, req studio.ScriptRequest) (*studio.VideoScript, error)
	SpeechWAV(ctx context.Context, text, voice string) ([]byte, error)
}

var _ Studio = (*studio.Service)(nil)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	logger  *slog.Logger
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithLogger sets the logger for failed tool calls.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = logger
	}
}

// NewServer creates an MCP server exposing the studio operations as tools.
func NewServer(s Studio, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "genstudio",
		version: "1.0.0",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	srv := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	h := &handlers{studio: s, logger: cfg.logger}
	srv.AddTool(textToImageTool(), handle(h, ToolTextToImage, h.textToImage))
	srv.AddTool(editImageTool(), handle(h, ToolEditImage, h.editImage))
	srv.AddTool(removeBackgroundTool(), handle(h, ToolRemoveBackground, h.removeBackground))
	srv.AddTool(promptFromImageTool(), handle(h, ToolPromptFromImage, h.promptFromImage))
	srv.AddTool(translateTool(), handle(h, ToolTranslate, h.translate))
	srv.AddTool(videoScriptTool(), handle(h, ToolVideoScript, h.videoScript))
	srv.AddTool(speakTool(), handle(h, ToolSpeak, h.speak))

	return srv
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(s Studio, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(s, opts...))
}

type handlers struct {
	studio Studio
	logger *slog.Logger
}

// handle decodes the call arguments into A and runs fn. Decode and studio
// failures become tool errors with a user-facing message.
func handle[A any](h *handlers, name string, fn func(ctx context.Context, args A) (*mcp.CallToolResult, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args A
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			if err := json.Unmarshal(data, &args); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
		}

		result, err := fn(ctx, args)
		if err != nil {
			h.logger.Warn("tool call failed", "tool", name, "error", err)
			return mcp.NewToolResultError(genstudio.UserMessage(err)), nil
		}
		return result, nil
	}
}

type textToImageArgs struct {
	Prompt      string  `json:"prompt"`
	AspectRatio string  `json:"aspect_ratio"`
	Count       float64 `json:"count"`
}

func (h *handlers) textToImage(ctx context.Context, args textToImageArgs) (*mcp.CallToolResult, error) {
	ratio := genstudio.AspectSquare
	if args.AspectRatio != "" {
		ratio = genstudio.AspectRatio(args.AspectRatio)
	}
	count := int(args.Count)
	if count == 0 {
		count = 1
	}
	images, err := h.studio.TextToImage(ctx, args.Prompt, ratio, count)
	if err != nil {
		return nil, err
	}
	return imageResult(fmt.Sprintf("Generated %d image(s).", len(images)), images...), nil
}

type editImageArgs struct {
	Image       string `json:"image"`
	Instruction string `json:"instruction"`
}

func (h *handlers) editImage(ctx context.Context, args editImageArgs) (*mcp.CallToolResult, error) {
	src, err := genstudio.ParseDataURL(args.Image)
	if err != nil {
		return nil, err
	}
	img, err := h.studio.EditImage(ctx, src, args.Instruction)
	if err != nil {
		return nil, err
	}
	return imageResult("Edited image.", img), nil
}

type imageArgs struct {
	Image string `json:"image"`
	Wish  string `json:"wish"`
}

func (h *handlers) removeBackground(ctx context.Context, args imageArgs) (*mcp.CallToolResult, error) {
	src, err := genstudio.ParseDataURL(args.Image)
	if err != nil {
		return nil, err
	}
	img, err := h.studio.RemoveBackground(ctx, src)
	if err != nil {
		return nil, err
	}
	return imageResult("Background removed.", img), nil
}

func (h *handlers) promptFromImage(ctx context.Context, args imageArgs) (*mcp.CallToolResult, error) {
	src, err := genstudio.ParseDataURL(args.Image)
	if err != nil {
		return nil, err
	}
	prompt, err := h.studio.PromptFromImage(ctx, src, args.Wish)
	if err != nil {
		return nil, err
	}
	return jsonResult(prompt)
}

type textArgs struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (h *handlers) translate(ctx context.Context, args textArgs) (*mcp.CallToolResult, error) {
	out, err := h.studio.Translate(ctx, args.Text)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out), nil
}

type videoScriptArgs struct {
	ProductName    string  `json:"product_name"`
	ProductInfo    string  `json:"product_info"`
	Industry       string  `json:"industry"`
	BrandTone      string  `json:"brand_tone"`
	TargetAudience string  `json:"target_audience"`
	CTA            string  `json:"cta"`
	Scenes         float64 `json:"scenes"`
	Language       string  `json:"language"`
}

func (h *handlers) videoScript(ctx context.Context, args videoScriptArgs) (*mcp.CallToolResult, error) {
	script, err := h.studio.VideoScript(ctx, studio.ScriptRequest{
		ProductName:    args.ProductName,
		ProductInfo:    args.ProductInfo,
		Industry:       args.Industry,
		BrandTone:      args.BrandTone,
		TargetAudience: args.TargetAudience,
		CTA:            args.CTA,
		Scenes:         int(args.Scenes),
		Language:       args.Language,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(script)
}

func (h *handlers) speak(ctx context.Context, args textArgs) (*mcp.CallToolResult, error) {
	wav, err := h.studio.SpeechWAV(ctx, args.Text, args.Voice)
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{Content: []mcp.Content{
		mcp.NewTextContent(fmt.Sprintf("Synthesized %d bytes of WAV audio.", len(wav))),
		mcp.NewAudioContent(base64.StdEncoding.EncodeToString(wav), "audio/wav"),
	}}, nil
}

func imageResult(text string, images ...genstudio.Image) *mcp.CallToolResult {
	content := []mcp.Content{mcp.NewTextContent(text)}
	for _, img := range images {
		content = append(content, mcp.NewImageContent(img.Base64(), img.MIMEType))
	}
	return &mcp.CallToolResult{Content: content}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
