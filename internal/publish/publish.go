package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/rampcon/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	DefaultEvent   = "palette"
	DefaultTimeout = 10 * time.Second
)

// Options configures one publish call.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = "/"
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Validate checks that the options can be used to connect.
func (o Options) Validate() error {
	if o.URL == "" {
		return errors.New("publish url is required")
	}
	u, err := url.Parse(o.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported publish url scheme '%s'", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("publish url '%s' has no host", o.URL)
	}
	return nil
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	ack any
	err error
}

// Publish connects, emits payload under opts.Event and returns once the
// event is sent, or once opts.AckEvent arrives when it is set. The whole
// exchange is bounded by opts.Timeout.
func Publish(ctx context.Context, opts Options, payload any) (any, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", opts.URL, "event", opts.Event, "ackEvent", opts.AckEvent)
	logger.Debug("Publish started")
	defer logger.Debug("Publish finished")

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(r opResult) {
		select {
		case done <- r:
		default:
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	parsedURL, _ := url.Parse(opts.URL)
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sockOpts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		sockOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected to viewer", "namespace", opts.Namespace, "sid", io.Id())
		if jsonData, err := json.Marshal(payload); err == nil {
			logger.Debug("Emitting palette", "bytes", len(jsonData))
		}
		io.Emit(opts.Event, payload)
		if opts.AckEvent == "" {
			// The deferred Disconnect closes the engine only after its write buffer drains.
			finish(opResult{})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		finish(opResult{err: fmt.Errorf("failed to connect to %s: %w", opts.URL, err)})
	})

	if opts.AckEvent != "" {
		io.On(types.EventName(opts.AckEvent), func(data ...any) {
			var ack any
			if len(data) > 0 {
				ack = data[0]
			}
			finish(opResult{ack: ack})
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", opts.AckEvent)
		}
		return nil, errors.New("timed out while waiting for initial connection")
	case res := <-done:
		return res.ack, res.err
	}
}
