package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"
)

// hostClient speaks a newline-delimited JSON request/response protocol with
// the desktop host process over a unix socket. One request per connection.
type hostClient struct {
	socket string
}

type hostRequest struct {
	Op    string          `json:"op"` // get | set | remove | clear | keys
	Key   string          `json:"key,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

type hostResponse struct {
	OK    bool            `json:"ok"`
	Found bool            `json:"found,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	Keys  []string        `json:"keys,omitempty"`
	Error string          `json:"error,omitempty"`
}

const hostDialTimeout = 500 * time.Millisecond

// dialHost probes the host socket once. A nil return means the host is not
// available and the caller should use the local fallback.
func dialHost(socket string) *hostClient {
	conn, err := net.DialTimeout("unix", socket, hostDialTimeout)
	if err != nil {
		return nil
	}
	conn.Close()
	return &hostClient{socket: socket}
}

func (h *hostClient) roundTrip(ctx context.Context, req hostRequest) (*hostResponse, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", h.socket)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	enc := json.NewEncoder(conn)
	if err := enc.Encode(req); err != nil {
		return nil, err
	}
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	var resp hostResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, errors.New("host error: " + resp.Error)
	}
	return &resp, nil
}

func (h *hostClient) get(ctx context.Context, key string) (json.RawMessage, error) {
	resp, err := h.roundTrip(ctx, hostRequest{Op: "get", Key: key})
	if err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, nil
	}
	return resp.Value, nil
}

func (h *hostClient) set(ctx context.Context, key string, value json.RawMessage) error {
	_, err := h.roundTrip(ctx, hostRequest{Op: "set", Key: key, Value: value})
	return err
}

func (h *hostClient) remove(ctx context.Context, key string) error {
	_, err := h.roundTrip(ctx, hostRequest{Op: "remove", Key: key})
	return err
}

func (h *hostClient) clear(ctx context.Context) error {
	_, err := h.roundTrip(ctx, hostRequest{Op: "clear"})
	return err
}

func (h *hostClient) keys(ctx context.Context) ([]string, error) {
	resp, err := h.roundTrip(ctx, hostRequest{Op: "keys"})
	if err != nil {
		return nil, err
	}
	return resp.Keys, nil
}
