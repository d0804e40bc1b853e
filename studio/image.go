package studio

import (
	"context"
	"fmt"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/executor"
	"github.com/spetersoncode/genstudio/models"
	"github.com/spetersoncode/genstudio/retry"
	"google.golang.org/genai"
)

// MaxImages is the most images one text-to-image call may request.
const MaxImages = 4

// TextToImage generates exactly count images from prompt. Fewer images than
// requested is an error, never a partial result.
func (s *Service) TextToImage(ctx context.Context, prompt string, ratio genstudio.AspectRatio, count int) ([]genstudio.Image, error) {
	if count < 1 || count > MaxImages {
		return nil, invalidInput("image count must be between 1 and %d, got %d", MaxImages, count)
	}
	if !ratio.Valid() {
		return nil, invalidInput("unsupported aspect ratio %q", ratio)
	}
	model := s.model(ctx, models.CapabilityImageGen)

	return executor.Run(ctx, s.exec, "generating images from text", func(ctx context.Context, p genstudio.Provider) ([]genstudio.Image, error) {
		resp, err := p.GenerateImages(ctx, model, textToImagePrompt(prompt), &genai.GenerateImagesConfig{
			NumberOfImages: int32(count),
			OutputMIMEType: "image/png",
			AspectRatio:    ratio.String(),
		})
		if err != nil {
			return nil, err
		}
		return generatedImages(resp, count)
	})
}

func generatedImages(resp *genai.GenerateImagesResponse, want int) ([]genstudio.Image, error) {
	var (
		images   []genstudio.Image
		filtered string
	)
	if resp != nil {
		for _, g := range resp.GeneratedImages {
			if g == nil {
				continue
			}
			if g.Image != nil && len(g.Image.ImageBytes) > 0 {
				images = append(images, genstudio.Image{Data: g.Image.ImageBytes, MIMEType: mimeOrDefault(g.Image.MIMEType)})
				continue
			}
			if g.RAIFilteredReason != "" && filtered == "" {
				filtered = g.RAIFilteredReason
			}
		}
	}
	if len(images) == want {
		return images, nil
	}
	if filtered != "" {
		return nil, genstudio.NewSafetyError(filtered)
	}
	return nil, genstudio.NewError(genstudio.KindEmptyOutput,
		fmt.Sprintf("expected %d images, but received %d", want, len(images)), nil)
}

// EditImage applies instruction to src and returns the edited image.
func (s *Service) EditImage(ctx context.Context, src genstudio.Image, instruction string) (genstudio.Image, error) {
	return s.editImage(ctx, "editing image", src, editPrompt(instruction))
}

// RemoveBackground isolates the subject of src on a transparent background.
func (s *Service) RemoveBackground(ctx context.Context, src genstudio.Image) (genstudio.Image, error) {
	return s.editImage(ctx, "removing background", src, removeBackgroundPrompt)
}

// RestorePhoto repairs and colorizes an old photograph.
func (s *Service) RestorePhoto(ctx context.Context, src genstudio.Image) (genstudio.Image, error) {
	return s.editImage(ctx, "restoring photo", src, restorePhotoPrompt)
}

// Upscale re-renders src at a higher resolution.
func (s *Service) Upscale(ctx context.Context, src genstudio.Image) (genstudio.Image, error) {
	return s.editImage(ctx, "upscaling image", src, upscalePrompt)
}

func (s *Service) editImage(ctx context.Context, action string, src genstudio.Image, prompt string) (genstudio.Image, error) {
	if len(src.Data) == 0 {
		return genstudio.Image{}, invalidInput("source image is empty")
	}
	return s.generateImage(ctx, action, imageContent(prompt, &src))
}

// generateImage runs one image-output content request with the image edit model.
func (s *Service) generateImage(ctx context.Context, action string, contents []*genai.Content) (genstudio.Image, error) {
	model := s.model(ctx, models.CapabilityImageEdit)
	return executor.Run(ctx, s.exec, action, func(ctx context.Context, p genstudio.Provider) (genstudio.Image, error) {
		resp, err := p.GenerateContent(ctx, model, contents, imageConfig())
		if err != nil {
			return genstudio.Image{}, err
		}
		return imageFrom(resp)
	})
}

// generateImages runs count sequential image requests inside one executor
// run, paced by the service limiter. Individual failures are tolerated as
// long as one image is produced; a credential failure aborts the batch so
// the executor can rotate and start over.
func (s *Service) generateImages(ctx context.Context, action string, contents []*genai.Content, count int) ([]genstudio.Image, error) {
	if count < 1 {
		return nil, invalidInput("image count must be at least 1, got %d", count)
	}
	model := s.model(ctx, models.CapabilityImageEdit)

	return executor.Run(ctx, s.exec, action, func(ctx context.Context, p genstudio.Provider) ([]genstudio.Image, error) {
		var (
			images []genstudio.Image
			errs   []error
		)
		for i := range count {
			if err := s.pacer.Wait(ctx); err != nil {
				return nil, err
			}
			resp, err := p.GenerateContent(ctx, model, contents, imageConfig())
			if err == nil {
				var img genstudio.Image
				img, err = imageFrom(resp)
				if err == nil {
					images = append(images, img)
					continue
				}
			}
			if retry.Classify(err).Retryable() {
				return nil, err
			}
			s.logger.Warn("image variation failed", "action", action, "index", i+1, "of", count, "error", err)
			errs = append(errs, err)
		}
		if len(images) == 0 {
			if len(errs) > 0 {
				return nil, errs[0]
			}
			return nil, genstudio.NewError(genstudio.KindEmptyOutput, "no images generated", nil)
		}
		return images, nil
	})
}

// EditImageVariations produces up to count edits of src, one request at a
// time. It succeeds if at least one variation was produced.
func (s *Service) EditImageVariations(ctx context.Context, src genstudio.Image, instruction string, count int) ([]genstudio.Image, error) {
	if len(src.Data) == 0 {
		return nil, invalidInput("source image is empty")
	}
	return s.generateImages(ctx, "generating image variations", imageContent(variationPrompt(instruction), &src), count)
}

// AdCreative composes an advertising image from an optional model, clothing
// and accessory image placed in setting.
func (s *Service) AdCreative(ctx context.Context, model, clothing, accessory *genstudio.Image, setting string, ratio genstudio.AspectRatio) ([]genstudio.Image, error) {
	prompt := adCreativePrompt(present(model), present(clothing), present(accessory), setting, ratio)
	return s.generateImages(ctx, "creating ad image", imageContent(prompt, model, clothing, accessory), 1)
}

// ProductPhotoshoot places the product in product into scene, count times.
func (s *Service) ProductPhotoshoot(ctx context.Context, product genstudio.Image, scene string, ratio genstudio.AspectRatio, count int) ([]genstudio.Image, error) {
	if len(product.Data) == 0 {
		return nil, invalidInput("product image is empty")
	}
	return s.generateImages(ctx, "creating product photos", imageContent(productPhotoshootPrompt(scene, ratio), &product), count)
}

// ExtractFashion cuts the named clothing items out of a photo of a person.
func (s *Service) ExtractFashion(ctx context.Context, photo genstudio.Image, items []string) (genstudio.Image, error) {
	if len(items) == 0 {
		return genstudio.Image{}, invalidInput("no fashion items to extract")
	}
	return s.generateImage(ctx, "extracting fashion items", imageContent(extractFashionPrompt(items), &photo))
}

// DressOnModel renders the person in model wearing clothing.
func (s *Service) DressOnModel(ctx context.Context, clothing, model genstudio.Image, ratio genstudio.AspectRatio, note string) (genstudio.Image, error) {
	return s.generateImage(ctx, "dressing model", imageContent(dressOnModelPrompt(ratio, note), &clothing, &model))
}

// DisplayFashion stages an isolated clothing item in scene.
func (s *Service) DisplayFashion(ctx context.Context, clothing genstudio.Image, scene string, ratio genstudio.AspectRatio) (genstudio.Image, error) {
	return s.generateImage(ctx, "displaying fashion item", imageContent(displayFashionPrompt(scene, ratio), &clothing))
}

// SceneImage renders one script scene, optionally featuring product.
func (s *Service) SceneImage(ctx context.Context, visuals, brandTone, productName string, product *genstudio.Image, ratio genstudio.AspectRatio) (genstudio.Image, error) {
	return s.generateImage(ctx, "creating scene image", imageContent(sceneImagePrompt(visuals, brandTone, productName, ratio), product))
}

func present(img *genstudio.Image) bool {
	return img != nil && len(img.Data) > 0
}
