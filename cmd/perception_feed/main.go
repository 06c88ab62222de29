// perception_feed 向游戏的关键点服务推送合成的手部数据
//
// 用于在没有摄像头和识别前端的情况下调试手势切割：
// 一只手沿椭圆轨迹移动，每隔一段时间做一次捏合。
//
// 用法:
//
//	go run ./cmd/perception_feed --addr localhost:8765 --rate 30
//	go run ./cmd/perception_feed --binary   # 使用 msgpack 二进制帧
package main

import (
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/decker502/fruitcut/pkg/perception"
)

func main() {
	addr := flag.String("addr", "localhost:8765", "关键点服务地址")
	path := flag.String("path", "/landmarks", "WebSocket 路径")
	binary := flag.Bool("binary", false, "使用 msgpack 二进制帧")
	rate := flag.Int("rate", 30, "每秒发送帧数")
	pinchEvery := flag.Duration("pinch-every", 2*time.Second, "捏合间隔")
	flag.Parse()

	if *rate <= 0 {
		log.Fatalf("rate must be positive, got %d", *rate)
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: *path}
	log.Printf("[Feed] Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("[Feed] Dial failed: %v", err)
	}
	defer conn.Close()

	// 服务端连接后先发送 hello
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("[Feed] Failed to read hello: %v", err)
	}
	if env, err := perception.DecodeEnvelope(data); err == nil && env.T == perception.MsgHello {
		if hello, err := perception.DecodePayload[perception.HelloPayload](env); err == nil {
			log.Printf("[Feed] Canvas %.0fx%.0f mirrorX=%v", hello.CanvasWidth, hello.CanvasHeight, hello.MirrorX)
		}
	}

	// 后台读取，及时处理 ping/close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Printf("[Feed] Connection closed: %v", err)
				return
			}
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	defer ticker.Stop()

	start := time.Now()
	var seq uint64
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Printf("[Feed] Interrupted, sent %d frames", seq)
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			pinch := *pinchEvery > 0 && elapsed%*pinchEvery < 150*time.Millisecond
			seq++
			payload := perception.HandsPayload{
				Seq:   seq,
				Hands: [][]perception.RawLandmark{syntheticHand(elapsed.Seconds()*1.5, pinch)},
			}
			if err := send(conn, payload, *binary); err != nil {
				log.Printf("[Feed] Write failed: %v", err)
				return
			}
		}
	}
}

func send(conn *websocket.Conn, payload perception.HandsPayload, binary bool) error {
	if binary {
		b, err := perception.EncodeBinary(payload)
		if err != nil {
			return err
		}
		return conn.WriteMessage(websocket.BinaryMessage, b)
	}
	b, err := perception.Encode(perception.MsgHands, payload)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}
