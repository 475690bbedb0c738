package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// outputFormat is a WAV container, matching the audio/wav content type
// the relay advertises.
const outputFormat = "riff-24khz-16bit-mono-pcm"

type client struct {
	key      string
	region   string
	endpoint string
	hc       *http.Client
}

// NewClient creates a speech-synthesis client for the Azure Cognitive
// Services TTS endpoint of the given region. The client is reused
// across requests; every synthesis call opens and closes its own
// session.
func NewClient(key, region string) (*client, error) {
	if key == "" {
		return nil, fmt.Errorf("subscription key is empty")
	}
	if region == "" {
		return nil, fmt.Errorf("region is empty")
	}
	return &client{
		key:      key,
		region:   region,
		endpoint: fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region),
		hc:       &http.Client{},
	}, nil
}

// Synthesize converts text to a complete WAV byte buffer using the
// requested voice. It resolves exactly once: either with audio data or
// with an error. A 200 response with an empty body counts as failure.
func (c *client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	ssml := buildSSML(text, voice)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("X-Microsoft-OutputFormat", outputFormat)
	req.Header.Set("User-Agent", "ai-relay")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio data: %w", err)
	}

	if len(audio) == 0 {
		return nil, fmt.Errorf("no audio data received")
	}

	return audio, nil
}

var ssmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func buildSSML(text, voice string) string {
	return fmt.Sprintf(
		`<speak version='1.0' xml:lang='%s'><voice name='%s'>%s</voice></speak>`,
		voiceLocale(voice), voice, ssmlEscaper.Replace(text),
	)
}

// voiceLocale derives the language tag from a voice name like
// en-US-JennyMultilingualNeural.
func voiceLocale(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 3 {
		return "en-US"
	}
	return parts[0] + "-" + parts[1]
}
