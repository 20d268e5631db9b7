package net

import (
	"fmt"
	"net"
	"strings"
)

// CustomURLScheme prefixes the links a host shares with clients.
const CustomURLScheme = "matrixboard://"

// OutgoingIP finds the address other machines on the LAN should use to
// reach this one. Without a route to the internet it falls back to the
// first non-loopback IPv4 interface.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// ShareLink is the link a client passes on its command line to join the
// host at ip:port.
func ShareLink(ip string, port int) string {
	return fmt.Sprintf("%s%s:%d", CustomURLScheme, ip, port)
}

// ParseShareLink returns the host:port carried by link.
func ParseShareLink(link string) (string, bool) {
	addr, ok := strings.CutPrefix(link, CustomURLScheme)
	if !ok {
		return "", false
	}
	addr = strings.TrimRight(addr, "/")
	return addr, addr != ""
}
