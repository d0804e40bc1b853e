// Package genstudio is the credential rotation core of a generative creative
// studio backed by Google's Gemini, Imagen and Veo models.
//
// A pool of user-supplied API keys is validated on registration, rotated on
// every call and retried on quota or authentication failures, with per-key
// error accounting and exponential backoff. Everything else in the studio is
// a thin request/response mapping on top of that layer.
//
// # Packages
//
//   - [github.com/spetersoncode/genstudio/credential]: the key store and the selector
//   - [github.com/spetersoncode/genstudio/executor]: retry and rotation around each call
//   - [github.com/spetersoncode/genstudio/studio]: image, text, speech and video operations
//   - [github.com/spetersoncode/genstudio/models]: persisted model preferences
//   - [github.com/spetersoncode/genstudio/store]: pluggable JSON persistence
//   - [github.com/spetersoncode/genstudio/audio]: WAV container for raw speech PCM
//   - [github.com/spetersoncode/genstudio/client]: wires the layers above over SQLite
//   - [github.com/spetersoncode/genstudio/mcp]: exposes studio operations as MCP tools
//
// # Basic Usage
//
//	c, err := client.New(client.Config{
//	    DBPath:      "genstudio.db",
//	    FallbackKey: os.Getenv("GEMINI_API_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	images, err := c.TextToImage(ctx, "a red bicycle", genstudio.AspectSquare, 2)
//	if err != nil {
//	    fmt.Println(genstudio.UserMessage(err))
//	}
//
// # Errors
//
// Every error surfaced by the executor is a [*Error] with a [Kind]. Match kinds
// with errors.Is against the sentinels ([ErrNoCredential], [ErrQuota], ...) and
// show [UserMessage] to end users.
package genstudio
