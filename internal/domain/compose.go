package domain

import (
	"sort"
	"strconv"
)

// ComposeConfig is the canonical, fully resolved form of a Docker Compose
// file. Rules read it only through the accessors below so every rule shares
// the same shape assumptions. ServiceOrder preserves the declaration order
// from the file, which Go maps would otherwise lose; issue output depends
// on it.
type ComposeConfig struct {
	Version      string         `json:"version,omitempty"`
	Services     map[string]any `json:"services"`
	ServiceOrder []string       `json:"-"`
	Networks     map[string]any `json:"networks"`
	Volumes      map[string]any `json:"volumes"`
	Raw          map[string]any `json:"-"`
}

// ServiceNames returns the set of declared service names.
func (c *ComposeConfig) ServiceNames() map[string]struct{} {
	names := make(map[string]struct{}, len(c.Services))
	for name := range c.Services {
		names[name] = struct{}{}
	}
	return names
}

// OrderedServiceNames returns service names in declaration order. Services
// present in the map but missing from ServiceOrder (synthetic configs built
// in tests) are appended sorted.
func (c *ComposeConfig) OrderedServiceNames() []string {
	seen := make(map[string]struct{}, len(c.ServiceOrder))
	names := make([]string, 0, len(c.Services))
	for _, name := range c.ServiceOrder {
		if _, ok := c.Services[name]; ok {
			names = append(names, name)
			seen[name] = struct{}{}
		}
	}
	var rest []string
	for name := range c.Services {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// Service returns the mapping form of a service definition, or false when
// the service is absent or not a mapping.
func (c *ComposeConfig) Service(name string) (map[string]any, bool) {
	raw, ok := c.Services[name]
	if !ok {
		return nil, false
	}
	m, ok := raw.(map[string]any)
	return m, ok
}

// HostPorts returns the host ports a service publishes, normalized from the
// three accepted shapes: a bare integer, a "host:container" string, and the
// long-form {published, target} mapping. Entries with no extractable host
// port are skipped.
func (c *ComposeConfig) HostPorts(serviceName string) []int {
	svc, ok := c.Service(serviceName)
	if !ok {
		return nil
	}
	rawPorts, ok := svc["ports"].([]any)
	if !ok {
		return nil
	}
	var ports []int
	for _, entry := range rawPorts {
		if p, ok := HostPort(entry); ok {
			ports = append(ports, p)
		}
	}
	return ports
}

// HostPort extracts the published host port from a single ports entry.
// A non-numeric host segment means "no mapping", not an error.
func HostPort(entry any) (int, bool) {
	switch v := entry.(type) {
	case int:
		return v, true
	case string:
		host := v
		for i := 0; i < len(v); i++ {
			if v[i] == ':' {
				host = v[:i]
				break
			}
		}
		p, err := strconv.Atoi(host)
		if err != nil {
			return 0, false
		}
		return p, true
	case map[string]any:
		if p, ok := toInt(v["published"]); ok {
			return p, true
		}
		return toInt(v["target"])
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case string:
		p, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return p, true
	}
	return 0, false
}

// StringList normalizes a compose field that may be a list of strings or a
// mapping (quite a few compose keys accept both). Mapping keys come back
// sorted so issue output stays deterministic.
func StringList(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		out := make([]string, 0, len(t))
		for k := range t {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	}
	return nil
}
