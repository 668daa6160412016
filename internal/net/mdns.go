package net

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	serviceType = "_strokeboard._tcp"
	loopback    = "127.0.0.1"
)

// ErrNoHost is returned by Discover when no board answered in time.
var ErrNoHost = errors.New("net: no board host found")

// Advertise announces a board host listening on port to the local network.
// Shut the returned server down when the host stops.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"StrokeBoard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover looks for an advertised board host and returns its ip:port.
func Discover(timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	if err := mdns.Query(params); err != nil {
		return "", fmt.Errorf("mdns query: %w", err)
	}
	close(entries)

	for e := range entries {
		if addr, ok := entryAddr(e); ok {
			return addr, nil
		}
	}
	return "", ErrNoHost
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port), true
}

// ShareIP returns the IPv4 address peers should dial to reach this host.
// The route to a public address wins; a UDP dial sends no packets. Without
// a route an interface address is used, and loopback as a last resort.
func ShareIP() string {
	if conn, err := net.Dial("udp4", "8.8.8.8:53"); err == nil {
		defer conn.Close()
		if a, ok := conn.LocalAddr().(*net.UDPAddr); ok && !a.IP.IsUnspecified() {
			return a.IP.String()
		}
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Printf("[NET] Listing interface addresses failed: %v", err)
		return loopback
	}
	if ip, ok := pickIPv4(addrs); ok {
		return ip.String()
	}
	log.Println("[NET] No LAN address found, share link uses loopback")
	return loopback
}

// pickIPv4 returns the first private IPv4 address in addrs, or failing that
// the first global unicast one.
func pickIPv4(addrs []net.Addr) (net.IP, bool) {
	var global net.IP
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipnet.IP.To4()
		switch {
		case ip == nil || !ip.IsGlobalUnicast():
		case ip.IsPrivate():
			return ip, true
		case global == nil:
			global = ip
		}
	}
	return global, global != nil
}
