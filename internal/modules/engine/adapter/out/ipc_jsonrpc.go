package out

import (
	"context"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"time"

	"focusguard/internal/modules/engine/dto"
	engineout "focusguard/internal/modules/engine/port/out"
)

const serviceName = "FocusGuard"

type JSONRPCServer struct{}

type JSONRPCClient struct{}

func NewJSONRPCServer() engineout.IPCServer {
	return &JSONRPCServer{}
}

func NewJSONRPCClient() engineout.IPCClient {
	return &JSONRPCClient{}
}

type rpcHandler struct {
	ctx context.Context
	h   engineout.IPCHandler
}

func (s *rpcHandler) Send(msg dto.Message, resp *dto.Response) error {
	*resp = s.h.Handle(s.ctx, msg)
	return nil
}

func (s *JSONRPCServer) Serve(ctx context.Context, socketPath string, handler engineout.IPCHandler) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o755); err != nil {
		return fmt.Errorf("create ipc dir: %w", err)
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale ipc socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen ipc socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		_ = ln.Close()
		return fmt.Errorf("chmod ipc socket: %w", err)
	}
	defer ln.Close()

	rpcSrv := rpc.NewServer()
	if err := rpcSrv.RegisterName(serviceName, &rpcHandler{ctx: ctx, h: handler}); err != nil {
		return fmt.Errorf("register ipc handler: %w", err)
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return err
		}
		go rpcSrv.ServeCodec(jsonrpc.NewServerCodec(conn))
	}
}

func (c *JSONRPCClient) Send(ctx context.Context, socketPath string, msg dto.Message) (dto.Response, error) {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return dto.Response{}, err
	}
	defer client.Close()
	resp := dto.Response{}
	if err := client.Call(serviceName+".Send", msg, &resp); err != nil {
		return dto.Response{}, err
	}
	return resp, nil
}

func dialClient(ctx context.Context, socketPath string) (*rpc.Client, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))
	return rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn)), nil
}
