// Package models provides the model catalog and the persisted per-capability
// model preferences used by the studio operations.
//
// # Capabilities
//
// Three capabilities are user-selectable: free-text reasoning
// ([CapabilityText]), image generation ([CapabilityImageGen]) and image
// editing ([CapabilityImageEdit]). Speech, video and credential probing use
// fixed models.
//
//	prefs := models.NewStore(store.NewMemoryAdapter())
//	p, _ := prefs.Load(ctx)
//	fmt.Println(p.Text) // gemini-2.5-flash unless overridden
//
//	_ = prefs.Set(ctx, models.CapabilityImageGen, models.Imagen3Fast.String())
package models
