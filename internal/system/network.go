package system

import (
	"fmt"
	"net"
	"strings"
)

// LocalIPv4 returns a non-loopback IPv4 address of this host, used to
// build the control URL shown in the canvas QR overlay. It returns ""
// when the host has no usable address; the overlay is simply skipped.
func LocalIPv4() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return ""
}

// ControlURL combines the host address with the listen spec (":8080" or
// "host:port") into the URL remote clients should hit.
func ControlURL(listenAddr string) string {
	if listenAddr == "" {
		return ""
	}
	host, port := splitListenAddr(listenAddr)
	if host == "" {
		host = LocalIPv4()
	}
	if host == "" {
		return ""
	}
	return fmt.Sprintf("http://%s:%s/api/v1/", host, port)
}

func splitListenAddr(addr string) (host, port string) {
	idx := strings.LastIndex(addr, ":")
	if idx < 0 {
		return addr, "80"
	}
	return addr[:idx], addr[idx+1:]
}
