package studio

import (
	"context"
	"strings"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/audio"
	"github.com/spetersoncode/genstudio/executor"
	"google.golang.org/genai"
)

// DefaultVoice is the prebuilt voice used when none is given.
const DefaultVoice = "Kore"

// Speech synthesizes text with the named prebuilt voice and returns raw
// 24 kHz mono 16-bit PCM. Use SpeechWAV for a playable file.
func (s *Service) Speech(ctx context.Context, text, voice string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalidInput("text to speak is empty")
	}
	if voice == "" {
		voice = DefaultVoice
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	return executor.Run(ctx, s.exec, "synthesizing speech", func(ctx context.Context, p genstudio.Provider) ([]byte, error) {
		resp, err := p.GenerateContent(ctx, s.speechModel, genai.Text(text), config)
		if err != nil {
			return nil, err
		}
		return audioFrom(resp)
	})
}

// SpeechWAV is Speech wrapped in a WAV container.
func (s *Service) SpeechWAV(ctx context.Context, text, voice string) ([]byte, error) {
	pcm, err := s.Speech(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	return audio.WAV(pcm), nil
}
