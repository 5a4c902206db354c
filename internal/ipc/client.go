package ipc

import (
	"context"
	"fmt"
	"time"
)

// UnhandledError is a protocol-level failure: the compositor reported an
// error, or an action came back with data instead of the bare
// acknowledgement.
type UnhandledError struct {
	Message string
}

func (e *UnhandledError) Error() string {
	return "not handled: " + e.Message
}

// Client is the request/reply shim over a Connection. The compositor's
// wire protocol answers actions and queries through the same success
// channel; Client restores the distinction: Query hands back data (nil
// for a bare ack), RunAction accepts nothing but the bare ack.
type Client struct {
	conn *Connection
}

// NewClient creates a client for the compositor socket at socketPath.
func NewClient(socketPath string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// Connect establishes the connection to the compositor.
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// send is a helper to send a request and get the raw reply.
func (c *Client) send(ctx context.Context, req Request) (*Reply, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}
	return c.conn.Send(ctx, req)
}

// Query sends a read-only request. A bare acknowledgement yields
// (nil, nil): the caller asked a question and got no data. A
// compositor-reported error surfaces as *UnhandledError.
func (c *Client) Query(ctx context.Context, req Request) (*Response, error) {
	reply, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if reply.Err != nil {
		return nil, &UnhandledError{Message: *reply.Err}
	}
	if reply.Ok.Kind == ResponseHandled {
		return nil, nil
	}
	return reply.Ok, nil
}

// RunAction sends a mutating action. The only valid success outcome is
// the bare acknowledgement; a data payload is a contract violation and
// surfaces as *UnhandledError, as does a compositor-reported error.
func (c *Client) RunAction(ctx context.Context, action Action) error {
	reply, err := c.send(ctx, ActionRequest(action))
	if err != nil {
		return err
	}
	if reply.Err != nil {
		return &UnhandledError{Message: *reply.Err}
	}
	if reply.Ok.Kind != ResponseHandled {
		return &UnhandledError{
			Message: fmt.Sprintf("action %s returned a %s payload instead of an acknowledgement", action.Name(), reply.Ok.Kind),
		}
	}
	return nil
}
