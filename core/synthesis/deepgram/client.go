// Package deepgram implements the synthesis engine boundary on top of the
// Deepgram speak API, either over a streaming websocket or a one-shot REST
// request.
package deepgram

import (
	"fmt"
	"os"

	"github.com/bnavac/soundscape/core/audio"
)

const (
	apiHost   = "api.deepgram.com"
	speakPath = "/v1/speak"
)

type options struct {
	apiKey       string
	encodingInfo audio.EncodingInfo
}

type Option func(*options)

// WithAPIKey overrides the DEEPGRAM_API_KEY environment lookup.
func WithAPIKey(apiKey string) Option {
	return func(o *options) { o.apiKey = apiKey }
}

// WithEncodingInfo selects the audio encoding requested from the API.
func WithEncodingInfo(encodingInfo audio.EncodingInfo) Option {
	return func(o *options) { o.encodingInfo = encodingInfo }
}

func resolveOptions(opts []Option) (options, error) {
	resolved := options{encodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(&resolved)
	}

	if resolved.apiKey == "" {
		apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
		if !ok {
			return options{}, fmt.Errorf("deepgram api key not found")
		}
		resolved.apiKey = apiKey
	}

	return resolved, nil
}
