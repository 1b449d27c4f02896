package scan

import (
	"fmt"
	"net"
)

// maxSweepHosts bounds the sweep so a /8 on the interface doesn't turn into
// a sixteen-million-host scan. 65534 covers a full /16.
const maxSweepHosts = 65534

// LocalNetwork returns the IPv4 network of the first up, non-loopback
// interface that has one.
func LocalNetwork() (*net.IPNet, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipnet.IP.To4()
			if ip4 == nil || ip4.IsLoopback() {
				continue
			}
			return &net.IPNet{IP: ip4.Mask(ipnet.Mask), Mask: ipnet.Mask}, nil
		}
	}
	return nil, fmt.Errorf("no usable IPv4 network interface found")
}

// Hosts enumerates the host addresses of a network, excluding the network and
// broadcast addresses. The own address is skipped so the sweep doesn't probe
// the local machine. Enumeration stops at maxSweepHosts.
func Hosts(ipnet *net.IPNet, skip net.IP) []string {
	ones, bits := ipnet.Mask.Size()
	if bits != 32 {
		return nil
	}
	total := 1 << (bits - ones)
	if total <= 2 {
		return nil
	}

	base := ipnet.IP.Mask(ipnet.Mask).To4()
	start := ipToUint32(base)
	var skipAddr uint32
	if s := skip.To4(); s != nil {
		skipAddr = ipToUint32(s)
	}

	hosts := make([]string, 0, min(total-2, maxSweepHosts))
	for i := 1; i < total-1; i++ {
		if len(hosts) >= maxSweepHosts {
			break
		}
		addr := start + uint32(i)
		if skipAddr != 0 && addr == skipAddr {
			continue
		}
		hosts = append(hosts, uint32ToIP(addr).String())
	}
	return hosts
}

func ipToUint32(ip net.IP) uint32 {
	return uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
}

func uint32ToIP(n uint32) net.IP {
	return net.IPv4(byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}
