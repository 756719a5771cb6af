// Package geoip provides IP-to-location lookup using a MaxMind GeoLite2
// database. Lookups degrade gracefully: with no database configured, or for
// private and unknown addresses, the zero Location is returned.
package geoip

import (
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/maxminddb-golang"
)

// privateCIDRs contains parsed CIDR blocks for private IP ranges.
var privateCIDRs []*net.IPNet

func init() {
	blocks := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"fc00::/7",  // IPv6 unique local
		"fe80::/10", // IPv6 link-local
	}
	for _, block := range blocks {
		if _, cidr, err := net.ParseCIDR(block); err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Location is the geo attribution attached to an ingested event.
type Location struct {
	Country string
	City    string
}

// Lookup wraps the MaxMind reader. The zero-value Lookup (no database) is
// valid and answers every query with an empty Location.
type Lookup struct {
	mu sync.RWMutex
	db *maxminddb.Reader
}

// geoRecord matches the GeoLite2-City database structure.
type geoRecord struct {
	Country struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"country"`
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
}

// Open creates a lookup from the database at path. An empty path disables
// lookups without error.
func Open(path string) (*Lookup, error) {
	if path == "" {
		return &Lookup{}, nil
	}
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoIP database: %w", err)
	}
	return &Lookup{db: db}, nil
}

// Locate resolves an IP to a country and city. Disabled lookups, private
// addresses, and misses all return the zero Location.
func (g *Lookup) Locate(ip net.IP) Location {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.db == nil || ip == nil || isPrivate(ip) {
		return Location{}
	}

	var rec geoRecord
	if err := g.db.Lookup(ip, &rec); err != nil {
		return Location{}
	}
	return Location{
		Country: rec.Country.Names["en"],
		City:    rec.City.Names["en"],
	}
}

// Close releases the database reader.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}

func isPrivate(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
