package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bnavac/soundscape/core/audio"
	"github.com/bnavac/soundscape/core/synthesis"
)

// StreamingEngine synthesizes each utterance over its own speak websocket.
type StreamingEngine struct {
	options options
}

func NewStreamingEngine(opts ...Option) (*StreamingEngine, error) {
	resolved, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	return &StreamingEngine{options: resolved}, nil
}

// Synthesize opens a websocket, sends the whole utterance, and forwards
// binary frames to the sink until the server flushes.
func (e *StreamingEngine) Synthesize(ctx context.Context, text string, voice string, sink synthesis.Sink) (func(), error) {
	conn, err := connectWebsocket(ctx, voice, e.options.encodingInfo, e.options.apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}

	utterance := &streamingUtterance{conn: conn, sink: sink, encodingInfo: e.options.encodingInfo}

	if err := utterance.sendMessage(speakMsg(text)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to send text to deepgram: %w", err)
	}
	if err := utterance.sendMessage(flushMsg); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to flush deepgram buffer: %w", err)
	}

	go utterance.processIncomingMessages()

	return utterance.stop, nil
}

type streamingUtterance struct {
	conn         *websocket.Conn
	sink         synthesis.Sink
	encodingInfo audio.EncodingInfo

	writeMu  sync.Mutex
	stopOnce sync.Once
	stopped  bool
}

func connectWebsocket(ctx context.Context, voice string, encodingInfo audio.EncodingInfo, apiKey string) (*websocket.Conn, error) {
	urlValues := url.Values{}
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", voice)
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.DialContext(
		ctx,
		(&url.URL{
			Scheme: "wss",
			Host:   apiHost, Path: speakPath,
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func (u *streamingUtterance) processIncomingMessages() {
	for {
		msgType, msg, err := u.conn.ReadMessage()
		if err != nil {
			u.writeMu.Lock()
			stopped := u.stopped
			u.writeMu.Unlock()

			if !stopped && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				u.sink.Fail(fmt.Errorf("websocket read failed: %w", err))
			}
			_ = u.conn.Close()
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			u.sink.AddBuffer(msg, u.encodingInfo)
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				// The whole utterance was rendered.
				u.sink.Finish()
				_ = u.sendMessage(closeMsg)
				_ = u.conn.Close()
				return
			case "Warning", "Error":
				u.sink.Fail(fmt.Errorf("deepgram reported %s", parsedMsg.Type))
				_ = u.conn.Close()
				return
			}
		}
	}
}

// stop halts synthesis for this utterance. Safe to call repeatedly and after
// normal completion.
func (u *streamingUtterance) stop() {
	u.stopOnce.Do(func() {
		u.writeMu.Lock()
		u.stopped = true
		u.writeMu.Unlock()

		_ = u.sendMessage(clearMsg)
		_ = u.sendMessage(closeMsg)
		_ = u.conn.Close()
	})
}

type websocketMessage struct {
	Type string `json:"type"`
}

type websocketSpeakMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var (
	flushMsg = websocketMessage{Type: "Flush"}
	clearMsg = websocketMessage{Type: "Clear"}
	closeMsg = websocketMessage{Type: "Close"}
)

func speakMsg(text string) websocketSpeakMessage {
	return websocketSpeakMessage{Type: "Speak", Text: text}
}

func (u *streamingUtterance) sendMessage(msg any) error {
	u.writeMu.Lock()
	defer u.writeMu.Unlock()

	if u.conn == nil {
		return fmt.Errorf("websocket connection closed")
	}
	if err := u.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}
