// Package perception 接收外部手部识别服务推送的关键点
//
// 识别服务（浏览器里的 MediaPipe、Python 脚本或 cmd/perception_feed）通过 websocket
// 连接上来，推送归一化坐标的原始关键点。文本帧是 JSON 信封 {"t": 类型, "p": 负载}，
// 二进制帧是 msgpack 编码的 HandsPayload。
package perception

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// 消息类型
const (
	// MsgHands 客户端 → 服务端：一帧关键点
	MsgHands = "hands"
	// MsgHello 服务端 → 客户端：连接建立后告知画布尺寸
	MsgHello = "hello"
)

// ErrEmptyMessage 空消息
var ErrEmptyMessage = errors.New("empty message")

// Envelope 文本帧信封
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// RawLandmark 识别服务输出的单个关键点
// X/Y 是 [0,1] 归一化的图像坐标，Visibility 缺失时视为 1
type RawLandmark struct {
	X          float64  `json:"x" msgpack:"x"`
	Y          float64  `json:"y" msgpack:"y"`
	Z          float64  `json:"z,omitempty" msgpack:"z,omitempty"`
	Visibility *float64 `json:"visibility,omitempty" msgpack:"visibility,omitempty"`
}

// HandsPayload 一帧识别结果，每只手 21 个关键点
type HandsPayload struct {
	Seq   uint64          `json:"seq" msgpack:"seq"`
	Hands [][]RawLandmark `json:"hands" msgpack:"hands"`
}

// HelloPayload 服务端问候
type HelloPayload struct {
	CanvasWidth  float64 `json:"canvasWidth"`
	CanvasHeight float64 `json:"canvasHeight"`
	MirrorX      bool    `json:"mirrorX"`
}

// Encode 编码 JSON 信封
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("envelope type is empty")
	}
	if payload == nil {
		return nil, fmt.Errorf("payload for %q is nil", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %q payload: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeEnvelope 解码 JSON 信封
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyMessage
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return e, nil
}

// DecodePayload 把信封负载解码为 T
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("failed to decode %q payload: %w", env.T, err)
	}
	return out, nil
}

// EncodeBinary 把一帧关键点编码为 msgpack
func EncodeBinary(p HandsPayload) ([]byte, error) {
	return msgpack.Marshal(&p)
}

// DecodeBinary 解码 msgpack 编码的关键点帧
func DecodeBinary(b []byte) (HandsPayload, error) {
	var p HandsPayload
	if len(b) == 0 {
		return p, ErrEmptyMessage
	}
	if err := msgpack.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("failed to decode binary hands frame: %w", err)
	}
	return p, nil
}
