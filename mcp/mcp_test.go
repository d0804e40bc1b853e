package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/audio"
	"github.com/spetersoncode/genstudio/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStudio records the arguments it was called with.
type fakeStudio struct {
	ratio   genstudio.AspectRatio
	count   int
	src     genstudio.Image
	script  studio.ScriptRequest
	voice   string
	failure error
}

func (f *fakeStudio) TextToImage(ctx context.Context, prompt string, ratio genstudio.AspectRatio, count int) ([]genstudio.Image, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	f.ratio, f.count = ratio, count
	images := make([]genstudio.Image, count)
	for i := range images {
		images[i] = genstudio.Image{Data: []byte(prompt), MIMEType: "image/png"}
	}
	return images, nil
}

func (f *fakeStudio) EditImage(ctx context.Context, src genstudio.Image, instruction string) (genstudio.Image, error) {
	f.src = src
	return genstudio.Image{Data: []byte(instruction), MIMEType: "image/png"}, f.failure
}

func (f *fakeStudio) RemoveBackground(ctx context.Context, src genstudio.Image) (genstudio.Image, error) {
	f.src = src
	return genstudio.Image{Data: []byte("cutout"), MIMEType: "image/png"}, f.failure
}

func (f *fakeStudio) PromptFromImage(ctx context.Context, src genstudio.Image, wish string) (studio.BilingualPrompt, error) {
	return studio.BilingualPrompt{VI: "vi " + wish, EN: "en " + wish}, f.failure
}

func (f *fakeStudio) Translate(ctx context.Context, text string) (string, error) {
	return "EN: " + text, f.failure
}

func (f *fakeStudio) VideoScript(ctx context.Context, req studio.ScriptRequest) (*studio.VideoScript, error) {
	f.script = req
	scenes := make([]studio.Scene, req.Scenes)
	for i := range scenes {
		scenes[i] = studio.Scene{Number: i + 1, Visuals: "v", Voiceover: "o"}
	}
	return &studio.VideoScript{Title: req.ProductName, Scenes: scenes}, f.failure
}

func (f *fakeStudio) SpeechWAV(ctx context.Context, text, voice string) ([]byte, error) {
	f.voice = voice
	return audio.WAV([]byte{0, 0}), f.failure
}

func connect(t *testing.T, s Studio) *client.Client {
	t.Helper()
	c, err := client.NewInProcessClient(NewServer(s))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	t.Cleanup(func() { c.Close() })

	_, err = c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "test-client",
				Version: "1.0.0",
			},
		},
	})
	require.NoError(t, err)
	return c
}

func call(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := c.CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	return result
}

func textOf(t *testing.T, content mcp.Content) string {
	t.Helper()
	switch c := content.(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("expected text content, got %T", content)
	return ""
}

func imageOf(t *testing.T, content mcp.Content) (data, mime string) {
	t.Helper()
	switch c := content.(type) {
	case mcp.ImageContent:
		return c.Data, c.MIMEType
	case *mcp.ImageContent:
		return c.Data, c.MIMEType
	}
	t.Fatalf("expected image content, got %T", content)
	return "", ""
}

const pngDataURL = "data:image/png;base64,iVBORw=="

func TestServerListsTools(t *testing.T) {
	c := connect(t, &fakeStudio{})

	result, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		ToolTextToImage, ToolEditImage, ToolRemoveBackground, ToolPromptFromImage,
		ToolTranslate, ToolVideoScript, ToolSpeak,
	}, names)
}

func TestTextToImageTool(t *testing.T) {
	t.Run("returns one image content per image", func(t *testing.T) {
		fake := &fakeStudio{}
		c := connect(t, fake)

		result := call(t, c, ToolTextToImage, map[string]any{"prompt": "cat", "aspect_ratio": "16:9", "count": 2})
		require.False(t, result.IsError)
		require.Len(t, result.Content, 3)
		assert.Equal(t, "Generated 2 image(s).", textOf(t, result.Content[0]))

		data, mime := imageOf(t, result.Content[1])
		assert.Equal(t, "Y2F0", data)
		assert.Equal(t, "image/png", mime)
		assert.Equal(t, genstudio.AspectWide, fake.ratio)
		assert.Equal(t, 2, fake.count)
	})

	t.Run("defaults ratio and count", func(t *testing.T) {
		fake := &fakeStudio{}
		c := connect(t, fake)

		call(t, c, ToolTextToImage, map[string]any{"prompt": "cat"})
		assert.Equal(t, genstudio.AspectSquare, fake.ratio)
		assert.Equal(t, 1, fake.count)
	})

	t.Run("studio errors become user messages", func(t *testing.T) {
		c := connect(t, &fakeStudio{failure: genstudio.NewQuotaError("Resource has been exhausted", 429, nil)})

		result := call(t, c, ToolTextToImage, map[string]any{"prompt": "cat"})
		assert.True(t, result.IsError)
		assert.Contains(t, textOf(t, result.Content[0]), "quota is exhausted")
	})
}

func TestImageTools(t *testing.T) {
	t.Run("edit decodes the data URL", func(t *testing.T) {
		fake := &fakeStudio{}
		c := connect(t, fake)

		result := call(t, c, ToolEditImage, map[string]any{"image": pngDataURL, "instruction": "blue"})
		require.False(t, result.IsError)
		assert.Equal(t, "image/png", fake.src.MIMEType)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, fake.src.Data)

		data, _ := imageOf(t, result.Content[1])
		assert.Equal(t, "Ymx1ZQ==", data)
	})

	t.Run("bad data URL is a tool error", func(t *testing.T) {
		c := connect(t, &fakeStudio{})

		result := call(t, c, ToolRemoveBackground, map[string]any{"image": "not a url"})
		assert.True(t, result.IsError)
	})

	t.Run("prompt from image returns JSON", func(t *testing.T) {
		c := connect(t, &fakeStudio{})

		result := call(t, c, ToolPromptFromImage, map[string]any{"image": pngDataURL, "wish": "slow"})
		require.False(t, result.IsError)

		var prompt studio.BilingualPrompt
		require.NoError(t, json.Unmarshal([]byte(textOf(t, result.Content[0])), &prompt))
		assert.Equal(t, "en slow", prompt.EN)
	})
}

func TestTextTools(t *testing.T) {
	fake := &fakeStudio{}
	c := connect(t, fake)

	result := call(t, c, ToolTranslate, map[string]any{"text": "xin chào"})
	assert.Equal(t, "EN: xin chào", textOf(t, result.Content[0]))

	result = call(t, c, ToolVideoScript, map[string]any{"product_name": "Cold Brew", "scenes": 3, "cta": "Buy"})
	require.False(t, result.IsError)
	assert.Equal(t, 3, fake.script.Scenes)
	assert.Equal(t, "Buy", fake.script.CTA)

	var script studio.VideoScript
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result.Content[0])), &script))
	assert.Len(t, script.Scenes, 3)

	result = call(t, c, ToolSpeak, map[string]any{"text": "hello", "voice": "Puck"})
	require.False(t, result.IsError)
	require.Len(t, result.Content, 2)
	assert.Equal(t, "Puck", fake.voice)
}
