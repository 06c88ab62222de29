package perception

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/decker502/fruitcut/pkg/config"
)

const (
	readLimit    = 1 << 20
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second

	// StaleAfter 超过这个时间没有新帧，Latest 返回空帧（手离开画面或识别服务卡住）
	StaleAfter = 500 * time.Millisecond
)

// Stats 连接统计（HUD 调试显示用）
type Stats struct {
	Clients  int
	Frames   uint64
	Rejected uint64
}

// Server 关键点 websocket 服务
//
// 每个连接一个读 goroutine，收到的帧换算为画布坐标后覆盖最新快照。
// 游戏循环每个 tick 调用 Latest 取一份拷贝，两边只通过互斥锁交互。
type Server struct {
	cfg      config.PerceptionConfig
	upgrader websocket.Upgrader
	now      func() time.Time

	mu         sync.RWMutex
	width      float64
	height     float64
	latest     Frame
	receivedAt time.Time
	stats      Stats

	httpServer *http.Server
	listener   net.Listener
}

// NewServer 创建关键点服务（不监听端口，调用 Start 后才开始服务）
//
// 参数:
//   - cfg: 监听地址、路径、是否镜像
//   - width, height: 画布尺寸，用于把归一化坐标换算为画布坐标
func NewServer(cfg config.PerceptionConfig, width, height float64) *Server {
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			// 识别服务通常跑在本机的浏览器页面里，来源不固定
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now:    time.Now,
		width:  width,
		height: height,
	}
}

// Handler 返回挂载了 websocket 端点的 http.Handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path(), s.handleWS)
	return mux
}

func (s *Server) path() string {
	if s.cfg.Path == "" {
		return "/landmarks"
	}
	return s.cfg.Path
}

// Start 开始监听
// 监听失败返回错误；监听成功后在后台 goroutine 中服务
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("[Perception] Listening on ws://%s%s", ln.Addr(), s.path())
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[Perception] Server stopped: %v", err)
		}
	}()
	return nil
}

// Addr 实际监听地址（Start 之前为空）
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown 停止服务
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// SetCanvasSize 更新画布尺寸，之后收到的帧按新尺寸换算
func (s *Server) SetCanvasSize(width, height float64) {
	s.mu.Lock()
	s.width = width
	s.height = height
	s.mu.Unlock()
}

// Latest 返回最新一帧的拷贝；没有帧或帧已过期时返回空帧
func (s *Server) Latest() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.receivedAt.IsZero() || s.now().Sub(s.receivedAt) > StaleAfter {
		return Frame{}
	}
	return s.latest.clone()
}

// Stats 当前连接统计
func (s *Server) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Publish 直接写入一帧原始关键点（websocket 之外的输入源也可以复用换算逻辑）
func (s *Server) Publish(p HandsPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame, err := Normalize(p, s.width, s.height, s.cfg.MirrorX)
	if err != nil {
		s.stats.Rejected++
	}
	s.latest = frame
	s.receivedAt = s.now()
	s.stats.Frames++
	return err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Perception] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.stats.Clients++
	hello := HelloPayload{CanvasWidth: s.width, CanvasHeight: s.height, MirrorX: s.cfg.MirrorX}
	s.mu.Unlock()
	defer s.clientGone()

	log.Printf("[Perception] Client connected: %s", r.RemoteAddr)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if msg, err := Encode(MsgHello, hello); err == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[Perception] Failed to send hello: %v", err)
			return
		}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[Perception] Read error: %v", err)
			}
			break
		}

		// 每收到一条消息都顺延读超时，识别服务一直推帧时不依赖 pong
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		payload, err := decodeFrame(msgType, data)
		if err != nil {
			s.reject(err)
			continue
		}
		if err := s.Publish(payload); err != nil {
			log.Printf("[Perception] Partial frame %d: %v", payload.Seq, err)
		}
	}

	log.Printf("[Perception] Client disconnected: %s", r.RemoteAddr)
}

// decodeFrame 按帧类型解码出一帧关键点
func decodeFrame(msgType int, data []byte) (HandsPayload, error) {
	switch msgType {
	case websocket.BinaryMessage:
		return DecodeBinary(data)
	case websocket.TextMessage:
		env, err := DecodeEnvelope(data)
		if err != nil {
			return HandsPayload{}, err
		}
		if env.T != MsgHands {
			return HandsPayload{}, fmt.Errorf("unexpected message type %q", env.T)
		}
		return DecodePayload[HandsPayload](env)
	default:
		return HandsPayload{}, fmt.Errorf("unsupported websocket message type %d", msgType)
	}
}

func (s *Server) reject(err error) {
	s.mu.Lock()
	s.stats.Rejected++
	s.mu.Unlock()
	log.Printf("[Perception] Dropped message: %v", err)
}

// clientGone 最后一个客户端断开时清空快照，避免手势残留在画面上
func (s *Server) clientGone() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Clients--
	if s.stats.Clients == 0 {
		s.latest = Frame{}
		s.receivedAt = time.Time{}
	}
}
