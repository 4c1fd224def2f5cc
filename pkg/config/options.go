package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// EnginePlaywright drives Chromium through playwright-go.
	EnginePlaywright = "playwright"
	// EngineRod drives Chrome through go-rod.
	EngineRod = "rod"

	// DefaultUserAgent presents the panes as a current desktop Chrome.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// DefaultAcceptLanguage steers the services towards English content.
	DefaultAcceptLanguage = "en-US,en;q=0.9"

	envEngine      = "LLMMIXER_ENGINE"
	envHeadless    = "LLMMIXER_HEADLESS"
	envUserDataDir = "LLMMIXER_USER_DATA_DIR"
)

// BrowserOptions is the optional "browser" section of the document. Zero
// values mean "not set" and are filled by Resolve.
type BrowserOptions struct {
	Engine         string `json:"engine,omitempty" yaml:"engine,omitempty"`
	Headless       *bool  `json:"headless,omitempty" yaml:"headless,omitempty"`
	UserAgent      string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	UserDataDir    string `json:"userDataDir,omitempty" yaml:"userDataDir,omitempty"`
	AcceptLanguage string `json:"acceptLanguage,omitempty" yaml:"acceptLanguage,omitempty"`
}

// IsZero reports whether no option is set.
func (o BrowserOptions) IsZero() bool {
	return o.Engine == "" && o.Headless == nil && o.UserAgent == "" &&
		o.UserDataDir == "" && o.AcceptLanguage == ""
}

// ResolvedBrowserOptions carries fully populated browser settings.
type ResolvedBrowserOptions struct {
	Engine         string
	Headless       bool
	UserAgent      string
	UserDataDir    string
	AcceptLanguage string
}

// ResolveBrowserOptions merges settings with precedence:
// CLI flags > environment variables > document > defaults.
// Empty flag strings and a nil headless flag mean "not given".
func ResolveBrowserOptions(flags BrowserOptions, doc BrowserOptions, appDir string) ResolvedBrowserOptions {
	resolved := ResolvedBrowserOptions{
		Engine:         EnginePlaywright,
		UserAgent:      DefaultUserAgent,
		UserDataDir:    filepath.Join(appDir, "profile"),
		AcceptLanguage: DefaultAcceptLanguage,
	}

	env := BrowserOptions{
		Engine:      os.Getenv(envEngine),
		UserDataDir: os.Getenv(envUserDataDir),
	}
	if raw := os.Getenv(envHeadless); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			env.Headless = &v
		}
	}

	// Lowest precedence first so later layers overwrite.
	for _, layer := range []BrowserOptions{doc, env, flags} {
		if layer.Engine != "" {
			resolved.Engine = strings.ToLower(strings.TrimSpace(layer.Engine))
		}
		if layer.Headless != nil {
			resolved.Headless = *layer.Headless
		}
		if layer.UserAgent != "" {
			resolved.UserAgent = layer.UserAgent
		}
		if layer.UserDataDir != "" {
			resolved.UserDataDir = layer.UserDataDir
		}
		if layer.AcceptLanguage != "" {
			resolved.AcceptLanguage = layer.AcceptLanguage
		}
	}

	return resolved
}
