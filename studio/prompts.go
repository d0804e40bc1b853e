package studio

import (
	"fmt"
	"strings"

	"github.com/spetersoncode/genstudio"
)

const noTextSuffix = "Do not include any text, logos, or watermarks."

func textToImagePrompt(prompt string) string {
	return prompt + ", 8k resolution, photorealistic, highly detailed, sharp focus, professional photography quality. " + noTextSuffix
}

func editPrompt(instruction string) string {
	return instruction + ". The final image must be of high quality, photorealistic, with sharp details, and look professional. " +
		"Do not add any text, logos, or watermarks unless explicitly requested in the prompt."
}

func variationPrompt(instruction string) string {
	return instruction + ". The resulting image must be photorealistic, high-resolution, with professional studio lighting and sharp focus. " +
		"The quality should be exceptional. " + noTextSuffix
}

const (
	removeBackgroundPrompt = "Remove the background of this image completely. The final image should have a transparent background. " +
		"Isolate the main subject perfectly with clean edges."

	restorePhotoPrompt = `CRITICAL TASK: Restore and colorize this old photograph.
1. Colorization: Colorize the photo with natural, realistic colors. The final image MUST be in full color, not black and white or sepia.
2. Damage repair: Fix all visible damage including scratches, tears, creases, stains, and fading.
3. Detail enhancement: Sharpen the details and improve the overall clarity so it looks like a modern, high-quality photograph.
4. No cropping: Do not crop or change the original composition of the image.`

	upscalePrompt = "Upscale this image to a higher resolution. Enhance the details, sharpen the focus, and improve the overall quality " +
		"without adding artifacts. Make it look like a high-resolution photograph."

	suggestBackgroundPrompt = "Analyze the model and outfit in the provided image(s). Suggest a professional, realistic advertising " +
		"photoshoot setting that suits them, for example 'a quiet beach at sunset' or 'a modern, elegant cafe interior'. " +
		"Return only ONE line of plain text describing the setting."

	// DefaultBackground is suggested when no reference image is given.
	DefaultBackground = "minimalist studio setting with professional lighting"
)

func adCreativePrompt(hasModel, hasClothing, hasAccessory bool, setting string, ratio genstudio.AspectRatio) string {
	var b strings.Builder
	b.WriteString("Create a photorealistic, high-resolution advertising image suitable for a fashion brand. ")
	if hasModel {
		b.WriteString("Use the provided person as the model. ")
	}
	if hasClothing {
		b.WriteString("The model should be wearing the provided clothing. ")
	}
	if hasAccessory {
		b.WriteString("The provided accessory or product should be prominently and attractively featured. ")
	}
	if strings.TrimSpace(setting) == "" {
		setting = "minimalist studio background"
	}
	fmt.Fprintf(&b, "Place them in the following setting: '%s'. The final image must have professional studio lighting, sharp focus, "+
		"and be of exceptional quality. Ensure the model's face is clear and well-lit. %s "+
		"IMPORTANT: The final output image MUST strictly adhere to a %s aspect ratio.", strings.TrimSpace(setting), noTextSuffix, ratio)
	return b.String()
}

func productPhotoshootPrompt(scene string, ratio genstudio.AspectRatio) string {
	return fmt.Sprintf(`Task: Create a professional product photoshoot image.
1. Product isolation: Take the primary product from the provided image and remove its original background. Do not alter the product itself.
2. Scene integration: Place the isolated product into a new, photorealistic scene described as: %q.
3. Realism: The lighting, shadows, and reflections on the product must match the new scene.
4. Quality: The final image must be high-resolution, sharp, and of professional quality.

RULES:
- No text, letters, numbers, watermarks, or logos.
- The final output image's aspect ratio MUST be exactly %s. If the ratio is 9:16 the image must be tall, not wide.`, scene, ratio)
}

func extractFashionPrompt(items []string) string {
	return fmt.Sprintf(`From the provided image of a person, perform the following tasks:
1. Identify and segment the following fashion item(s): %s.
2. Isolate only the clothing item(s), removing the model and any other background elements completely.
3. Return a single image containing ONLY the extracted item(s) on a transparent background.
4. If multiple items are extracted, place them side by side with a small amount of space between them.
5. The output must be clean and ready for an e-commerce catalog. Do not include shadows or parts of the model's body.`, strings.Join(items, ", "))
}

func dressOnModelPrompt(ratio genstudio.AspectRatio, note string) string {
	var userNote string
	if strings.TrimSpace(note) != "" {
		userNote = "\nUSER NOTE: " + strings.TrimSpace(note) + "\n"
	}
	return fmt.Sprintf(`Act as a professional fashion photographer and editor.

INPUTS:
- IMAGE 1 (Clothing): the garment to be worn.
- IMAGE 2 (Model): the person who will wear the garment.

TASK:
Create a high-resolution, photorealistic composite image of the model from Image 2 wearing the clothing from Image 1.
The clothing must fit naturally, respecting pose, body shape and the lighting of the original scene.
%s
TECH SPECS:
- Aspect ratio: %s
- No text, no logos, no artifacts.`, userNote, ratio)
}

func displayFashionPrompt(scene string, ratio genstudio.AspectRatio) string {
	return fmt.Sprintf(`Task: Create a professional photoshoot image for a fashion product.
1. Product placement: Place the clothing item naturally within the described scene: %q. It may be on a hanger, on a mannequin, or neatly folded.
2. Scene integration: Lighting, shadows and reflections must match the scene and look photorealistic.
3. Quality: The final image must be high-resolution, sharp, and of e-commerce quality.
4. %s
5. The final output image's aspect ratio MUST be exactly %s.`, scene, noTextSuffix, ratio)
}

func promptFromImagePrompt(wish string) string {
	var b strings.Builder
	b.WriteString("Based on this image, write an extremely creative, detailed and inspiring prompt for a short, vivid " +
		"advertising video clip of about 5 to 10 seconds. Describe only the visuals (scene, action, camera movement, mood) " +
		"and do NOT include any dialogue or narration. Keep it under 1000 words and suitable for a high-end video model.")
	if w := strings.TrimSpace(wish); w != "" {
		fmt.Fprintf(&b, " The user wants the following: %q. Work this idea into the final prompt.", w)
	}
	b.WriteString(` Provide the prompt in both Vietnamese and English as a JSON object with keys "vi" and "en".`)
	return b.String()
}

func videoScriptPrompt(r ScriptRequest) string {
	return fmt.Sprintf(`You are an expert scriptwriter for short video ads. Create a compelling video script from the following information. The output MUST be a valid JSON object.

Product information:
- Product name: %s
- Description: %s
- Industry: %s
- Target audience: %s

Ad requirements:
- Brand tone: %s
- Number of scenes: %d
- Call to action: %s

Instructions:
1. Analyze any provided images for context about the product's appearance and use cases.
2. Write a script with a clear title and a brief summary.
3. The script must contain exactly %d scenes.
4. For each scene provide "scene_number" (an integer starting from 1), "visuals" (a detailed description for an AI image generator, in %s) and "voiceover" (the voiceover text, in %s).
5. The final voiceover should lead naturally into the call to action: %q.
6. The tone of the entire script must match %q.
7. Return ONLY the JSON object.`,
		r.ProductName, r.ProductInfo, r.Industry, r.TargetAudience,
		r.BrandTone, r.Scenes, r.CTA,
		r.Scenes, r.language(), r.language(), r.CTA, r.BrandTone)
}

func sceneImagePrompt(visuals, brandTone, productName string, ratio genstudio.AspectRatio) string {
	return fmt.Sprintf(`Based on the provided product image (if any) and the following description, create a single, photorealistic, high-resolution advertising image.

Visual description: %q

Context:
- Product name: %s
- Desired tone: %s

Instructions:
- Exceptional quality, professional lighting and sharp focus.
- If a product image is provided, the product must be recognizable.
- %s
- IMPORTANT: The final output image MUST strictly adhere to a %s aspect ratio.`, visuals, productName, brandTone, noTextSuffix, ratio)
}

func adCopyPrompt(s *VideoScript, language string) string {
	var lines []string
	for _, scene := range s.Scenes {
		lines = append(lines, fmt.Sprintf("Scene %d: %s", scene.Number, scene.Voiceover))
	}
	return fmt.Sprintf(`You are an expert copywriter. Based on the following video script, write a short, engaging and persuasive ad copy for social media.

Video script title: %s
Video summary: %s
Voiceovers:
%s

Instructions:
- Write the ad copy in %s.
- Keep it concise and impactful.
- Include relevant hashtags.
- End with a strong call to action.
- Return only the ad copy text, without any introductory phrases.`, s.Title, s.Summary, strings.Join(lines, "\n"), language)
}

func translatePrompt(text string) string {
	return fmt.Sprintf("Translate the following text to English. Return only the translated text, without any introductory phrases.\n\nText: %q", text)
}

func videoPrompt(prompt, style string, ratio genstudio.AspectRatio) string {
	p := fmt.Sprintf("%s. Create the video in a %s aspect ratio.", strings.TrimSpace(prompt), ratio)
	if style != "" {
		p += " Style: " + style + "."
	}
	return p
}
