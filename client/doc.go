// Package client assembles a ready-to-use studio from configuration.
//
// The Client wires one persistence backend (SQLite or memory) into the key
// pool and the model preferences, builds the executor on top of the pool and
// exposes the studio operations directly:
//
//	c, err := client.New(client.Config{
//	    DBPath:      "studio.db",
//	    FallbackKey: os.Getenv("GEMINI_API_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if _, err := c.Keys.Add(ctx, "AIza..."); err != nil {
//	    return err
//	}
//	images, err := c.TextToImage(ctx, "A sunset over mountains", genstudio.AspectWide, 2)
//
// # Retry Configuration
//
// Quota and credential failures rotate to the next key with exponential
// backoff. Customize it:
//
//	c, err := client.New(client.Config{
//	    RetryConfig: &retry.Config{
//	        MaxAttempts:  5,
//	        InitialDelay: 500 * time.Millisecond,
//	        MaxDelay:     30 * time.Second,
//	        Multiplier:   2,
//	    },
//	})
//
// # Events
//
// Observe attempts via an event channel, or hand it to LogEvents:
//
//	events := make(chan retry.Event, 100)
//	c, _ := client.New(client.Config{Events: events})
//	go client.LogEvents(ctx, events, slog.Default())
package client
