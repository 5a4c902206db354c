package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"
)

// DefaultTimeout bounds a single request/reply exchange. The compositor
// is local, so replies are expected well within this.
const DefaultTimeout = 5 * time.Second

// SocketPath returns the compositor's socket address from the
// environment niri sets for its session.
func SocketPath() (string, error) {
	path := os.Getenv("NIRI_SOCKET")
	if path == "" {
		return "", fmt.Errorf("NIRI_SOCKET is not set; is niri running?")
	}
	return path, nil
}

// Connection manages the unix domain socket connection to the
// compositor. One request, one blocking reply, per Send; no pipelining.
type Connection struct {
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	timeout    time.Duration
}

// NewConnection creates a new connection instance.
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect establishes the unix domain socket connection.
func (c *Connection) Connect() error {
	var err error
	c.conn, err = net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.reader = bufio.NewReader(c.conn)
	return nil
}

// Close closes the connection.
func (c *Connection) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected returns true if the connection is established.
func (c *Connection) IsConnected() bool {
	return c.conn != nil
}

// Send writes one request and reads the compositor's reply. Exactly one
// message goes out and one comes back per call.
func (c *Connection) Send(ctx context.Context, req Request) (*Reply, error) {
	// Apply timeout if not already set
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send with newline delimiter
	data = append(data, '\n')
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}

	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	// Read reply with context cancellation support
	replyChan := make(chan *Reply, 1)
	errChan := make(chan error, 1)

	go func() {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			errChan <- fmt.Errorf("failed to set read deadline: %w", err)
			return
		}

		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			errChan <- fmt.Errorf("failed to read reply: %w", err)
			return
		}

		var reply Reply
		if err := json.Unmarshal(line, &reply); err != nil {
			errChan <- fmt.Errorf("failed to unmarshal reply: %w", err)
			return
		}

		if reply.Ok == nil && reply.Err == nil {
			errChan <- fmt.Errorf("reply carries neither Ok nor Err")
			return
		}

		replyChan <- &reply
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	case err := <-errChan:
		return nil, err
	case reply := <-replyChan:
		return reply, nil
	}
}
