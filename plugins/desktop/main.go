package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/go-plugin"

	notifyrpc "focusguard/internal/modules/notify/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{Name: "desktop", Version: "1.0.0"}, nil
}

// Deliver shows the notification through notify-send when it is installed and
// always echoes it to stderr, which the host folds into its own log.
func (s *server) Deliver(ctx context.Context, in *notifyrpc.DeliverRequest) (*notifyrpc.DeliverResponse, error) {
	fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", in.Kind, in.Title, in.Message)
	if path, err := exec.LookPath("notify-send"); err == nil {
		_ = exec.CommandContext(ctx, path, "--app-name=focusguard", in.Title, in.Message).Run()
	}
	return &notifyrpc.DeliverResponse{Accepted: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
