// ABOUTME: mDNS discovery of trainer backends on the local network
// ABOUTME: Browses for _pronounce-api._tcp and reports server addresses
package discovery

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service the trainer backend advertises.
const ServiceType = "_pronounce-api._tcp"

// Server describes a discovered trainer backend.
type Server struct {
	Name string
	Host string
	Port int
}

// URL returns the base URL for connecting to the server.
func (s Server) URL() string {
	return fmt.Sprintf("http://%s:%d", s.Host, s.Port)
}

// Find browses the local network for trainer backends until timeout
// and returns the deduplicated results sorted by address.
func Find(timeout time.Duration) ([]Server, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	done := make(chan []Server, 1)

	go func() {
		seen := make(map[string]bool)
		var servers []Server
		for entry := range entries {
			server, ok := entryServer(entry)
			if !ok {
				continue
			}
			addr := fmt.Sprintf("%s:%d", server.Host, server.Port)
			if seen[addr] {
				continue
			}
			seen[addr] = true
			servers = append(servers, server)
			log.Printf("Discovered trainer: %s at %s", server.Name, addr)
		}
		done <- servers
	}()

	params := &mdns.QueryParam{
		Service: ServiceType,
		Domain:  "local",
		Timeout: timeout,
		Entries: entries,
	}

	err := mdns.Query(params)
	close(entries)
	servers := <-done
	if err != nil {
		return nil, fmt.Errorf("mdns query failed: %w", err)
	}

	sort.Slice(servers, func(i, j int) bool {
		if servers[i].Host != servers[j].Host {
			return servers[i].Host < servers[j].Host
		}
		return servers[i].Port < servers[j].Port
	})
	return servers, nil
}

// entryServer converts an mDNS entry, preferring the IPv4 address.
// Entries without a usable address are dropped.
func entryServer(entry *mdns.ServiceEntry) (Server, bool) {
	server := Server{
		Name: entry.Name,
		Port: entry.Port,
	}

	switch {
	case entry.AddrV4 != nil:
		server.Host = entry.AddrV4.String()
	case entry.AddrV6 != nil:
		server.Host = fmt.Sprintf("[%s]", entry.AddrV6.String())
	default:
		return Server{}, false
	}
	return server, true
}
