package studio

import (
	"fmt"
	"strings"

	"github.com/spetersoncode/genstudio"
	"google.golang.org/genai"
)

// safetyFinishReasons are finish reasons meaning the output was withheld on
// policy grounds.
var safetyFinishReasons = map[string]bool{
	"SAFETY":             true,
	"PROHIBITED_CONTENT": true,
	"IMAGE_SAFETY":       true,
	"BLOCKLIST":          true,
	"SPII":               true,
}

// candidate returns the first candidate, or a kinded error when the prompt was
// blocked, no candidate came back, or the candidate was stopped for safety.
func candidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil {
		return nil, genstudio.NewError(genstudio.KindEmptyOutput, "no response from model", nil)
	}
	if fb := resp.PromptFeedback; fb != nil {
		if reason := string(fb.BlockReason); reason != "" && reason != "BLOCKED_REASON_UNSPECIFIED" {
			return nil, genstudio.NewSafetyError(reason)
		}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, genstudio.NewError(genstudio.KindEmptyOutput, "no response from model", nil)
	}
	c := resp.Candidates[0]
	if reason := string(c.FinishReason); safetyFinishReasons[reason] {
		return nil, genstudio.NewSafetyError(reason)
	}
	return c, nil
}

func parts(c *genai.Candidate) []*genai.Part {
	if c == nil || c.Content == nil {
		return nil
	}
	return c.Content.Parts
}

// imageFrom extracts the first inline image of a response. A text-only reply
// is a refusal; no data at all is empty output.
func imageFrom(resp *genai.GenerateContentResponse) (genstudio.Image, error) {
	c, err := candidate(resp)
	if err != nil {
		return genstudio.Image{}, err
	}
	for _, p := range parts(c) {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return genstudio.Image{Data: p.InlineData.Data, MIMEType: mimeOrDefault(p.InlineData.MIMEType)}, nil
		}
	}
	if text := strings.TrimSpace(textOf(c)); text != "" {
		return genstudio.Image{}, genstudio.NewRefusalError(text)
	}
	return genstudio.Image{}, genstudio.NewError(genstudio.KindEmptyOutput, "no image data in response", nil)
}

// audioFrom extracts the inline audio data of a speech response.
func audioFrom(resp *genai.GenerateContentResponse) ([]byte, error) {
	c, err := candidate(resp)
	if err != nil {
		return nil, err
	}
	for _, p := range parts(c) {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData.Data, nil
		}
	}
	return nil, genstudio.NewError(genstudio.KindEmptyOutput, "no audio data in response", nil)
}

// textFrom returns the trimmed concatenated text of a response.
func textFrom(resp *genai.GenerateContentResponse) (string, error) {
	c, err := candidate(resp)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(textOf(c))
	if text == "" {
		return "", genstudio.NewError(genstudio.KindEmptyOutput, "no text in response", nil)
	}
	return text, nil
}

func textOf(c *genai.Candidate) string {
	var b strings.Builder
	for _, p := range parts(c) {
		if p != nil && p.Text != "" && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func mimeOrDefault(mime string) string {
	if mime == "" {
		return "image/png"
	}
	return mime
}

// imageContent builds a single user turn of inline images followed by text.
func imageContent(text string, images ...*genstudio.Image) []*genai.Content {
	var ps []*genai.Part
	for _, img := range images {
		if img == nil || len(img.Data) == 0 {
			continue
		}
		ps = append(ps, &genai.Part{InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType}})
	}
	ps = append(ps, &genai.Part{Text: text})
	return []*genai.Content{{Role: "user", Parts: ps}}
}

func imageConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE"}}
}

func invalidInput(format string, args ...any) error {
	return genstudio.NewError(genstudio.KindUnknown, fmt.Sprintf(format, args...), nil)
}
