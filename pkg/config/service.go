package config

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SlotCount is the fixed number of panes the shell tiles.
const SlotCount = 8

// SchemaVersion is written into every saved document.
const SchemaVersion = 2

// Canonical service names, in default left-to-right order.
const (
	ServiceChatGPT  = "ChatGPT"
	ServiceClaude   = "Claude"
	ServiceDeepSeek = "DeepSeek"
	ServiceGemini   = "Gemini"
	ServiceGrok     = "Grok"
	ServiceKimi     = "Kimi"
	ServiceMistral  = "Mistral"
	ServiceQwen     = "Qwen"
)

// ServiceRecord holds the persisted display attributes of one chat service.
type ServiceRecord struct {
	// Name is the stable identifier; it is the join key for migration and
	// the lookup key for menu entries.
	Name string `json:"name" yaml:"name"`

	// Endpoint is the address the pane navigates to. Empty disables the pane.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	Visible bool `json:"visible" yaml:"visible"`

	// Order is the left-to-right position. It is rewritten on every reorder.
	Order int `json:"order" yaml:"order"`

	// Width is a proportional weight, not pixels.
	Width float64 `json:"width" yaml:"width"`
}

// HasEndpoint reports whether the record can be navigated to.
func (r ServiceRecord) HasEndpoint() bool {
	return strings.TrimSpace(r.Endpoint) != ""
}

// Domain returns the registrable domain of the endpoint ("openai.com" for
// "https://chat.openai.com"). It falls back to the bare host, or "" when the
// endpoint does not parse.
func (r ServiceRecord) Domain() string {
	if !r.HasEndpoint() {
		return ""
	}
	u, err := url.Parse(r.Endpoint)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := u.Hostname()
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// Configuration is the ordered list of service records plus the optional
// browser options section of the persisted document.
type Configuration struct {
	Services []ServiceRecord
	Browser  BrowserOptions
}

// Clone returns a deep copy.
func (c Configuration) Clone() Configuration {
	out := Configuration{Browser: c.Browser}
	if c.Services != nil {
		out.Services = make([]ServiceRecord, len(c.Services))
		copy(out.Services, c.Services)
	}
	return out
}

// Find returns the index of the record with the given name, or -1.
func (c Configuration) Find(name string) int {
	for i, s := range c.Services {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the service names in sequence order.
func (c Configuration) Names() []string {
	names := make([]string, len(c.Services))
	for i, s := range c.Services {
		names[i] = s.Name
	}
	return names
}

var defaultServices = []ServiceRecord{
	{Name: ServiceChatGPT, Endpoint: "https://chat.openai.com"},
	{Name: ServiceClaude, Endpoint: "https://claude.ai"},
	{Name: ServiceDeepSeek, Endpoint: "https://chat.deepseek.com"},
	{Name: ServiceGemini, Endpoint: "https://gemini.google.com"},
	{Name: ServiceGrok, Endpoint: "https://grok.com"},
	{Name: ServiceKimi, Endpoint: "https://www.kimi.com/en/"},
	{Name: ServiceMistral, Endpoint: "https://chat.mistral.ai"},
	{Name: ServiceQwen, Endpoint: "https://chat.qwen.ai"},
}

// DefaultConfiguration returns the authoritative eight-service schema: every
// service visible, ordered 0..7, width 1.0.
func DefaultConfiguration() Configuration {
	services := make([]ServiceRecord, len(defaultServices))
	for i, s := range defaultServices {
		s.Visible = true
		s.Order = i
		s.Width = 1.0
		services[i] = s
	}
	return Configuration{Services: services}
}

// DefaultNames returns the canonical service names in default order. Menu
// entries are bound to these once at startup.
func DefaultNames() []string {
	names := make([]string, len(defaultServices))
	for i, s := range defaultServices {
		names[i] = s.Name
	}
	return names
}
