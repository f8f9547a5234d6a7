package fingertec

import (
	"fmt"
	"time"
)

// SDKAdapter talks to the device directly over the vendor SDK. The fetch
// path is a stub until the SDK binding lands; Connect still enforces the
// fail-fast configuration contract so deployments misconfigured for sdk
// mode surface immediately.
type SDKAdapter struct {
	host      string
	port      int
	connected bool
}

func NewSDKAdapter(host string, port int) *SDKAdapter {
	return &SDKAdapter{host: host, port: port}
}

func (a *SDKAdapter) Connect() error {
	if a.host == "" || a.port == 0 {
		return fmt.Errorf("%w: sdk host/port not configured", ErrConnection)
	}
	// TODO: perform the vendor SDK handshake once the device firmware is pinned
	a.connected = true
	return nil
}

func (a *SDKAdapter) FetchSince(since time.Time) ([]RawEvent, error) {
	if !a.connected {
		return nil, fmt.Errorf("%w: sdk adapter not connected", ErrConnection)
	}
	return nil, nil
}

func (a *SDKAdapter) Close() error {
	a.connected = false
	return nil
}
