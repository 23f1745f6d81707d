package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

const (
	defaultAddr = "127.0.0.1:8080"

	// lmsProbePath is the edxapi meta route; CMS hosts mount no API routes and
	// are probed on the status page instead.
	lmsProbePath = "/openedx_plugin/api/edxapi_meta"
	cmsProbePath = "/openedx_plugin/"
)

func main() {
	os.Exit(check())
}

func check() int {
	addr := normalizeAddr(os.Getenv("OPENEDX_PLUGIN_LISTEN_ADDR"))
	url := probeURL(addr, os.Getenv("OPENEDX_PLUGIN_PROJECT_TYPE"))

	client := &http.Client{Timeout: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 1
	}

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}

	return 0
}

func probeURL(addr, projectType string) string {
	path := lmsProbePath
	if projectType == "cms" {
		path = cmsProbePath
	}
	return fmt.Sprintf("http://%s%s", addr, path)
}

// normalizeAddr points the probe at loopback when the server binds every
// interface; the probe runs in the same container as the server.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
