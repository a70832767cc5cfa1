package main

import (
	"net/http"
	"os"
	"strings"
	"time"
)

// Minimal liveness probe for container health checks: exits 0 when the
// battle server answers its version endpoint.
func main() {
	addr := os.Getenv("BATTLEFORGE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/api/version")
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
