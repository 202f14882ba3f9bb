package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes the frames of one websocket client.
type Codec interface {
	Name() string
	ContentType() string
	// MessageType is the websocket frame type the codec writes.
	MessageType() int
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                               { return "json" }
func (jsonCodec) ContentType() string                        { return "application/json" }
func (jsonCodec) MessageType() int                           { return websocket.TextMessage }
func (jsonCodec) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                               { return "msgpack" }
func (msgpackCodec) ContentType() string                        { return "application/msgpack" }
func (msgpackCodec) MessageType() int                           { return websocket.BinaryMessage }
func (msgpackCodec) Marshal(v interface{}) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }

// JSON and Msgpack are the supported encodings.
var (
	JSON    Codec = jsonCodec{}
	Msgpack Codec = msgpackCodec{}
)

// codecFor picks the encoding asked for with ?encoding=, JSON by default.
func codecFor(r *http.Request) Codec {
	if r.URL.Query().Get("encoding") == Msgpack.Name() {
		return Msgpack
	}
	return JSON
}

// decoderFor returns the codec able to read a frame of the given type.
func decoderFor(messageType int) Codec {
	if messageType == websocket.BinaryMessage {
		return Msgpack
	}
	return JSON
}
