package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bnavac/soundscape/core/synthesis"
)

const restChunkSize = 4096

// RESTEngine synthesizes each utterance with a single speak request and
// forwards the response body to the sink in chunks as it arrives.
//
// Prefer [StreamingEngine] when time to first audio matters; the REST path
// exists for environments where websockets are unavailable.
type RESTEngine struct {
	options options
	client  *http.Client
}

func NewRESTEngine(opts ...Option) (*RESTEngine, error) {
	resolved, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	return &RESTEngine{
		options: resolved,
		client: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
	}, nil
}

func (e *RESTEngine) Synthesize(ctx context.Context, text string, voice string, sink synthesis.Sink) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := e.newSpeakRequest(ctx, text, voice)
	if err != nil {
		cancel()
		return nil, err
	}

	go e.relayResponse(ctx, req, sink)

	return cancel, nil
}

func (e *RESTEngine) newSpeakRequest(ctx context.Context, text string, voice string) (*http.Request, error) {
	urlValues := url.Values{}
	urlValues.Set("encoding", e.options.encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(e.options.encodingInfo.SampleRate))
	urlValues.Set("model", voice)
	urlValues.Set("container", "none")

	requestBodyBytes, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return nil, fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		(&url.URL{
			Scheme: "https",
			Host:   apiHost, Path: speakPath,
			RawQuery: urlValues.Encode(),
		}).String(),
		bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+e.options.apiKey)
	return req, nil
}

func (e *RESTEngine) relayResponse(ctx context.Context, req *http.Request, sink synthesis.Sink) {
	ctx, span := tracer.Start(ctx, "synthesize speech")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", req.URL.Query().Get("model")))

	resp, err := e.client.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			err = fmt.Errorf("error sending request: %w", err)
			span.RecordError(err)
			sink.Fail(err)
		}
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("deepgram returned status %s", resp.Status)
		span.RecordError(err)
		sink.Fail(err)
		return
	}

	chunk := make([]byte, restChunkSize)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buffer := make([]byte, n)
			copy(buffer, chunk[:n])
			sink.AddBuffer(buffer, e.options.encodingInfo)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				sink.Finish()
			} else if !errors.Is(err, context.Canceled) {
				err = fmt.Errorf("error reading response: %w", err)
				span.RecordError(err)
				sink.Fail(err)
			}
			return
		}
	}
}
