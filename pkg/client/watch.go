package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
)

func (c *Client) wsURL(token string) (string, error) {
	u, err := url.Parse(c.baseURL + apiPrefix + "/ws")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// WatchSummaries subscribes to realtime pushes and calls fn for each event
// until ctx is done or the connection drops. It returns nil when ctx ends
// the watch.
func (c *Client) WatchSummaries(ctx context.Context, fn func(Event)) error {
	creds, err := c.tokens.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if creds.AccessToken == "" {
		return &AuthError{Message: "not logged in"}
	}

	target, err := c.wsURL(creds.AccessToken)
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			_ = c.tokens.Clear()
			return &AuthError{Message: "Invalid or expired token"}
		}
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure {
				return nil
			}
			return fmt.Errorf("watch failed: %w", err)
		}
		fn(ev)
	}
}
