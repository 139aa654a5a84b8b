package tcp

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gridlabsinc/gridtactoe-backend/internal/usecase"
)

const writeTimeout = 10 * time.Second

type Server struct {
	logger  *slog.Logger
	manager *usecase.GameManager
}

func New(logger *slog.Logger, manager *usecase.GameManager) *Server {
	return &Server{
		logger:  logger.With("component", "tcp"),
		manager: manager,
	}
}

// Start - accepts connections until the context is canceled, one
// goroutine per connection.
func (that *Server) Start(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			that.logger.Error("failed to accept connection", "error", err)
			continue
		}

		go that.handleConn(ctx, conn)
	}
}

func (that *Server) handleConn(ctx context.Context, conn net.Conn) {
	connID := uuid.NewString()
	log := that.logger.With("conn_id", connID)

	client := newClient(conn)
	defer client.Close()

	log.Info("new connection", "remote", conn.RemoteAddr().String())

	h := &handler{
		logger:  log,
		manager: that.manager,
		client:  client,
		connID:  connID,
	}

	if err := h.run(ctx); err != nil {
		log.Error("connection handler failed", "error", err)
	}

	log.Info("connection closed")
}

// client wraps a connection with line framing. Only the owning handler
// reads, but any handler broadcasting to the session may write, so
// writes are serialized and bounded by a deadline: a dead peer drops
// its own updates instead of wedging a broadcast.
type client struct {
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex
}

func newClient(conn net.Conn) *client {
	return &client{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

func (that *client) Send(msg string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if _, err := that.conn.Write([]byte(msg + "\n")); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) ReadLine() (string, error) {
	line, err := that.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read line: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (that *client) Close() error {
	return that.conn.Close()
}
