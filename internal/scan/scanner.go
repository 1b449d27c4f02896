package scan

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Connector establishes an ADB connection to a host. Satisfied by adb.Client.
type Connector interface {
	Connect(ip string, port int) error
}

// Scanner sweeps the local network for a device listening on the ADB port.
type Scanner struct {
	ADB          Connector
	Port         int
	Workers      int
	ProbeTimeout time.Duration
}

// Result describes a successful connection.
type Result struct {
	IP   string
	Addr string // ip:port
}

// TryKnown attempts known addresses (from config or history) in order before
// any sweep. Returns the first that connects, or nil if none did.
func (s *Scanner) TryKnown(ctx context.Context, addrs []string) *Result {
	for _, addr := range addrs {
		if ctx.Err() != nil {
			return nil
		}
		ip := addr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			ip = host
		}
		if !s.probe(ip) {
			continue
		}
		if err := s.ADB.Connect(ip, s.Port); err == nil {
			return &Result{IP: ip, Addr: fmt.Sprintf("%s:%d", ip, s.Port)}
		}
	}
	return nil
}

// Sweep probes every host on the local network in parallel and connects to
// the first one accepting the ADB port. The first success cancels the
// remaining workers.
func (s *Scanner) Sweep(ctx context.Context) (*Result, error) {
	network, err := LocalNetwork()
	if err != nil {
		return nil, err
	}
	hosts := Hosts(network, ownAddress())
	if len(hosts) == 0 {
		return nil, fmt.Errorf("network %s has no hosts to scan", network)
	}
	fmt.Printf("Scanning %d hosts on %s...\n", len(hosts), network)

	r := s.sweepHosts(ctx, hosts)
	if r == nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("no device found on %s port %d", network, s.Port)
	}
	return r, nil
}

// sweepHosts fans the candidate hosts out to the worker pool and returns the
// first successful connection, or nil if every host was exhausted. All
// workers have exited by the time it returns.
func (s *Scanner) sweepHosts(ctx context.Context, hosts []string) *Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	candidates := make(chan string)
	results := make(chan Result, 1)

	var wg sync.WaitGroup
	workers := s.Workers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, candidates, results)
		}()
	}

	go func() {
		defer close(candidates)
		for _, h := range hosts {
			select {
			case candidates <- h:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case r := <-results:
		cancel()
		<-done
		return &r
	case <-done:
		// Drain a success that raced with worker shutdown.
		select {
		case r := <-results:
			return &r
		default:
			return nil
		}
	}
}

func (s *Scanner) worker(ctx context.Context, candidates <-chan string, results chan<- Result) {
	for {
		select {
		case <-ctx.Done():
			return
		case ip, ok := <-candidates:
			if !ok {
				return
			}
			// A candidate handed out just before cancellation is dropped.
			if ctx.Err() != nil {
				return
			}
			if !s.probe(ip) {
				continue
			}
			if err := s.ADB.Connect(ip, s.Port); err != nil {
				continue
			}
			select {
			case results <- Result{IP: ip, Addr: fmt.Sprintf("%s:%d", ip, s.Port)}:
			default:
			}
			return
		}
	}
}

// probe checks whether a host accepts TCP connections on the ADB port.
// Handing only listening hosts to adb keeps the sweep from stalling on
// adb connect timeouts.
func (s *Scanner) probe(ip string) bool {
	timeout := s.ProbeTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", ip, s.Port), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ownAddress returns this machine's IPv4 address on the default route, so the
// sweep can skip it. Best effort.
func ownAddress() net.IP {
	conn, err := net.Dial("udp4", "192.0.2.1:9")
	if err != nil {
		return nil
	}
	defer conn.Close()
	host, _, err := net.SplitHostPort(conn.LocalAddr().String())
	if err != nil {
		return nil
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	if ip == nil {
		return nil
	}
	return ip.To4()
}
