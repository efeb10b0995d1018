package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	notifyrpc "focusguard/internal/modules/notify/adapter/out/rpc"
	"focusguard/internal/modules/notify/domain"
	notifyout "focusguard/internal/modules/notify/port/out"
	"focusguard/internal/platform/logging"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches a notifier binary per call and talks to it over gRPC.
type GRPCHost struct {
	logger hclog.Logger
}

func NewGRPCHost(logger hclog.Logger) notifyout.Host {
	return &GRPCHost{logger: logging.OrDiscard(logger)}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	if meta.Name != manifest.Name {
		return fmt.Errorf("notifier reports name %q, manifest says %q", meta.Name, manifest.Name)
	}
	return nil
}

func (h *GRPCHost) Deliver(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	response, err := client.Deliver(callCtx, &notifyrpc.DeliverRequest{
		Kind:      string(notification.Kind),
		Title:     notification.Title,
		Message:   notification.Message,
		OpenView:  notification.OpenView,
		CreatedAt: notification.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", domain.ErrNotifierTimeout, manifest.Name)
		}
		return fmt.Errorf("deliver notification: %w", err)
	}
	if !response.Accepted {
		return fmt.Errorf("notifier %s rejected %s notification", manifest.Name, notification.Kind)
	}
	return nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (notifyrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  notifyrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          notifyrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start notifier client: %w", err)
	}
	raw, err := rpcClient.Dispense(notifyrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense notifier: %w", err)
	}
	typed, ok := raw.(notifyrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("notifier rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, defaultCallTimeout)
}
