package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/executor"
	"github.com/spetersoncode/genstudio/models"
	"google.golang.org/genai"
)

// BilingualPrompt is a video prompt in Vietnamese and English.
type BilingualPrompt struct {
	VI string `json:"vi"`
	EN string `json:"en"`
}

var bilingualSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"vi": {Type: genai.TypeString, Description: "The video prompt in Vietnamese."},
		"en": {Type: genai.TypeString, Description: "The video prompt in English."},
	},
	Required: []string{"vi", "en"},
}

// PromptFromImage writes a bilingual video prompt describing src, steered by
// the optional wish.
func (s *Service) PromptFromImage(ctx context.Context, src genstudio.Image, wish string) (BilingualPrompt, error) {
	if len(src.Data) == 0 {
		return BilingualPrompt{}, invalidInput("source image is empty")
	}
	model := s.model(ctx, models.CapabilityText)
	contents := imageContent(promptFromImagePrompt(wish), &src)

	return executor.Run(ctx, s.exec, "writing prompt from image", func(ctx context.Context, p genstudio.Provider) (BilingualPrompt, error) {
		resp, err := p.GenerateContent(ctx, model, contents, jsonConfig(bilingualSchema))
		if err != nil {
			return BilingualPrompt{}, err
		}
		var out BilingualPrompt
		if err := decodeJSON(resp, &out); err != nil {
			return BilingualPrompt{}, err
		}
		if out.VI == "" || out.EN == "" {
			return BilingualPrompt{}, genstudio.NewError(genstudio.KindMalformed, "prompt is missing a language", nil)
		}
		return out, nil
	})
}

// SuggestBackground proposes a photoshoot setting for the given model and
// clothing images. With neither image it returns DefaultBackground without a
// remote call.
func (s *Service) SuggestBackground(ctx context.Context, model, clothing *genstudio.Image) (string, error) {
	if !present(model) && !present(clothing) {
		return DefaultBackground, nil
	}
	textModel := s.model(ctx, models.CapabilityText)
	contents := imageContent(suggestBackgroundPrompt, model, clothing)

	return executor.Run(ctx, s.exec, "suggesting background", func(ctx context.Context, p genstudio.Provider) (string, error) {
		resp, err := p.GenerateContent(ctx, textModel, contents, nil)
		if err != nil {
			return "", err
		}
		return textFrom(resp)
	})
}

// ScriptRequest describes the product and ad for VideoScript.
type ScriptRequest struct {
	ProductName    string
	ProductInfo    string
	Industry       string
	BrandTone      string
	TargetAudience string
	CTA            string
	// Scenes is the exact number of scenes the script must contain.
	Scenes int
	// Language of visuals and voiceover, default Vietnamese.
	Language string
	Images   []genstudio.Image
}

func (r ScriptRequest) language() string {
	if r.Language == "" {
		return "Vietnamese"
	}
	return r.Language
}

// Scene is one scene of a video script.
type Scene struct {
	Number    int    `json:"scene_number"`
	Visuals   string `json:"visuals"`
	Voiceover string `json:"voiceover"`
}

// VideoScript is a structured short video ad script.
type VideoScript struct {
	Title   string  `json:"title"`
	Summary string  `json:"summary"`
	Scenes  []Scene `json:"scenes"`
}

var videoScriptSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":   {Type: genai.TypeString},
		"summary": {Type: genai.TypeString},
		"scenes": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"scene_number": {Type: genai.TypeInteger},
					"visuals":      {Type: genai.TypeString},
					"voiceover":    {Type: genai.TypeString},
				},
				Required: []string{"scene_number", "visuals", "voiceover"},
			},
		},
	},
	Required: []string{"title", "summary", "scenes"},
}

// VideoScript writes a script with exactly req.Scenes scenes. A script with
// any other number of scenes is rejected as malformed.
func (s *Service) VideoScript(ctx context.Context, req ScriptRequest) (*VideoScript, error) {
	if req.Scenes < 1 {
		return nil, invalidInput("scene count must be at least 1, got %d", req.Scenes)
	}
	model := s.model(ctx, models.CapabilityText)
	images := make([]*genstudio.Image, len(req.Images))
	for i := range req.Images {
		images[i] = &req.Images[i]
	}
	contents := imageContent(videoScriptPrompt(req), images...)

	return executor.Run(ctx, s.exec, "writing video script", func(ctx context.Context, p genstudio.Provider) (*VideoScript, error) {
		resp, err := p.GenerateContent(ctx, model, contents, jsonConfig(videoScriptSchema))
		if err != nil {
			return nil, err
		}
		var script VideoScript
		if err := decodeJSON(resp, &script); err != nil {
			return nil, err
		}
		if len(script.Scenes) != req.Scenes {
			return nil, genstudio.NewError(genstudio.KindMalformed,
				fmt.Sprintf("expected %d scenes, but received %d", req.Scenes, len(script.Scenes)), nil)
		}
		return &script, nil
	})
}

// AdCopy writes social media ad copy for script in language (default
// Vietnamese).
func (s *Service) AdCopy(ctx context.Context, script *VideoScript, language string) (string, error) {
	if script == nil {
		return "", invalidInput("script is required")
	}
	if language == "" {
		language = "Vietnamese"
	}
	return s.generateText(ctx, "writing ad copy", adCopyPrompt(script, language))
}

// Translate translates text to English.
func (s *Service) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return s.generateText(ctx, "translating text", translatePrompt(text))
}

func (s *Service) generateText(ctx context.Context, action, prompt string) (string, error) {
	model := s.model(ctx, models.CapabilityText)
	return executor.Run(ctx, s.exec, action, func(ctx context.Context, p genstudio.Provider) (string, error) {
		resp, err := p.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		return textFrom(resp)
	})
}

func jsonConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

// decodeJSON parses the text of resp into v. Unparseable output is malformed.
func decodeJSON(resp *genai.GenerateContentResponse, v any) error {
	text, err := textFrom(resp)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(text, "```json"), "```"), "```"))
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return genstudio.NewError(genstudio.KindMalformed, "response is not the expected JSON", err)
	}
	return nil
}
