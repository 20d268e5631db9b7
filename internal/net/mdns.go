package net

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_matrixboard._tcp"

// Advertise announces a hub listening on port to the local network.
// The caller shuts the returned server down on exit.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"",
		"",
		port,
		[]net.IP{firstIPv4()},
		[]string{"MatrixBoard", "path=" + Path},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[HOST] advertising %s on port %d", serviceType, port)
	return server, nil
}

// Browse listens for advertised hubs for the given time and returns their
// host:port addresses in the order they answered.
func Browse(timeout time.Duration) ([]string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan []string)
	go func() {
		var found []string
		seen := make(map[string]bool)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			addr := fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port)
			if !seen[addr] {
				seen[addr] = true
				found = append(found, addr)
			}
		}
		done <- found
	}()

	err := mdns.Query(&mdns.QueryParam{
		Service:     serviceType,
		Domain:      "local",
		Timeout:     timeout,
		Entries:     entries,
		DisableIPv6: true,
	})
	close(entries)
	found := <-done
	if err != nil {
		return found, fmt.Errorf("mDNS browse: %w", err)
	}
	return found, nil
}

func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}
