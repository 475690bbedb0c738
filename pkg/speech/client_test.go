package speech

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient("test-key", "westeurope")
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	c.endpoint = srv.URL
	return c
}

func TestSynthesize(t *testing.T) {
	audio := []byte("RIFF fake wav bytes")
	var gotBody string
	var gotKey, gotFormat, gotContentType string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotFormat = r.Header.Get("X-Microsoft-OutputFormat")
		gotContentType = r.Header.Get("Content-Type")
		w.Write(audio)
	})

	got, err := c.Synthesize(context.Background(), "hello world", "en-US-JennyMultilingualNeural")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(got, audio) {
		t.Errorf("expected audio bytes passed through")
	}
	if gotKey != "test-key" {
		t.Errorf("expected subscription key header, got %q", gotKey)
	}
	if gotFormat != "riff-24khz-16bit-mono-pcm" {
		t.Errorf("expected WAV output format, got %q", gotFormat)
	}
	if gotContentType != "application/ssml+xml" {
		t.Errorf("expected SSML content type, got %q", gotContentType)
	}
	if !strings.Contains(gotBody, "name='en-US-JennyMultilingualNeural'") {
		t.Errorf("expected voice name in SSML, got %s", gotBody)
	}
	if !strings.Contains(gotBody, ">hello world<") {
		t.Errorf("expected text in SSML, got %s", gotBody)
	}
}

func TestSynthesize_EmptyAudio(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Synthesize(context.Background(), "hello", "en-US-JennyMultilingualNeural")
	if err == nil {
		t.Fatal("expected error for empty audio response")
	}
	if !strings.Contains(err.Error(), "no audio data") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSynthesize_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid subscription key", http.StatusUnauthorized)
	})

	_, err := c.Synthesize(context.Background(), "hello", "en-US-JennyMultilingualNeural")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestBuildSSML_EscapesText(t *testing.T) {
	ssml := buildSSML("a < b & c > d", "en-US-JennyMultilingualNeural")

	if !strings.Contains(ssml, "a &lt; b &amp; c &gt; d") {
		t.Errorf("expected escaped text, got %s", ssml)
	}
	if !strings.Contains(ssml, `xml:lang='en-US'`) {
		t.Errorf("expected locale derived from voice, got %s", ssml)
	}
}

func TestVoiceLocale(t *testing.T) {
	tests := []struct {
		voice    string
		expected string
	}{
		{"en-US-JennyMultilingualNeural", "en-US"},
		{"de-DE-KatjaNeural", "de-DE"},
		{"weird", "en-US"},
	}

	for _, test := range tests {
		if got := voiceLocale(test.voice); got != test.expected {
			t.Errorf("voiceLocale(%q) = %q, expected %q", test.voice, got, test.expected)
		}
	}
}
