// Package navguard decides what happens to a pane's navigation requests
// before the browser engine sends them: which headers are injected, and
// whether a navigation is cancelled and redirected back to the pane's own
// service.
package navguard

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// Rule cancels navigations that leave a service for a blocked location.
type Rule struct {
	// Name identifies the rule in logs.
	Name string

	// Home matches the host of the pane's home endpoint.
	Home string

	// Block matches full target URLs that are cancelled.
	Block []string

	// Allow matches full target URLs that pass even when Block matches.
	Allow []string

	// Redirect is where a cancelled navigation is sent instead.
	Redirect string
}

// Decision is the outcome of checking one navigation.
type Decision struct {
	Cancel   bool
	Redirect string
	Rule     string
}

type compiledRule struct {
	name     string
	home     glob.Glob
	block    []glob.Glob
	allow    []glob.Glob
	redirect string
}

// Guard applies header injection and redirect rules. It is immutable after
// construction and safe for concurrent use by engine callbacks.
type Guard struct {
	headers map[string]string
	rules   []compiledRule
}

// New compiles a guard from headers and rules.
func New(headers map[string]string, rules []Rule) (*Guard, error) {
	g := &Guard{headers: make(map[string]string, len(headers))}
	for k, v := range headers {
		g.headers[k] = v
	}

	for _, r := range rules {
		home, err := glob.Compile(strings.ToLower(r.Home))
		if err != nil {
			return nil, fmt.Errorf("invalid home pattern '%s' in rule %s: %w", r.Home, r.Name, err)
		}
		cr := compiledRule{name: r.Name, home: home, redirect: r.Redirect}

		for _, pattern := range r.Block {
			b, err := glob.Compile(strings.ToLower(pattern))
			if err != nil {
				return nil, fmt.Errorf("invalid block pattern '%s' in rule %s: %w", pattern, r.Name, err)
			}
			cr.block = append(cr.block, b)
		}
		for _, pattern := range r.Allow {
			a, err := glob.Compile(strings.ToLower(pattern))
			if err != nil {
				return nil, fmt.Errorf("invalid allow pattern '%s' in rule %s: %w", pattern, r.Name, err)
			}
			cr.allow = append(cr.allow, a)
		}

		g.rules = append(g.rules, cr)
	}

	return g, nil
}

// DefaultRules keeps the Qwen pane from being bounced to the regional
// Tongyi site.
func DefaultRules() []Rule {
	return []Rule{{
		Name:     "qwen-regional-redirect",
		Home:     "chat.qwen.ai",
		Block:    []string{"*tongyi.aliyun.com*"},
		Allow:    []string{"*chat.qwen.ai*"},
		Redirect: "https://chat.qwen.ai/",
	}}
}

// DefaultHeaders returns the headers injected into every navigation.
func DefaultHeaders(acceptLanguage string) map[string]string {
	if acceptLanguage == "" {
		acceptLanguage = "en-US,en;q=0.9"
	}
	return map[string]string{
		"Accept-Language": acceptLanguage,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	}
}

// Default builds the guard with the built-in headers and rules.
func Default(acceptLanguage string) *Guard {
	g, err := New(DefaultHeaders(acceptLanguage), DefaultRules())
	if err != nil {
		panic(err)
	}
	return g
}

// Headers returns a copy of the headers to inject.
func (g *Guard) Headers() map[string]string {
	out := make(map[string]string, len(g.headers))
	for k, v := range g.headers {
		out[k] = v
	}
	return out
}

// MergeHeaders returns the request's headers with the injected ones set on
// top. Existing keys are replaced case-insensitively.
func (g *Guard) MergeHeaders(existing map[string]string) map[string]string {
	out := make(map[string]string, len(existing)+len(g.headers))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range g.headers {
		for ek := range out {
			if strings.EqualFold(ek, k) {
				delete(out, ek)
			}
		}
		out[k] = v
	}
	return out
}

// Check evaluates a navigation from a pane whose home endpoint is home to
// target.
func (g *Guard) Check(home, target string) Decision {
	host := hostOf(home)
	if host == "" {
		return Decision{}
	}
	lowerTarget := strings.ToLower(target)

	for _, r := range g.rules {
		if !r.home.Match(host) {
			continue
		}
		if !matchAny(r.block, lowerTarget) || matchAny(r.allow, lowerTarget) {
			continue
		}
		return Decision{Cancel: true, Redirect: r.redirect, Rule: r.name}
	}
	return Decision{}
}

func matchAny(patterns []glob.Glob, s string) bool {
	for _, p := range patterns {
		if p.Match(s) {
			return true
		}
	}
	return false
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
