package config

import "sort"

// legacyCounts are the record counts written by earlier releases that
// shipped four and then six services.
var legacyCounts = map[int]bool{4: true, 6: true}

// IsLegacyCount reports whether n matches a superseded schema size.
func IsLegacyCount(n int) bool {
	return legacyCounts[n]
}

// Migrate upgrades a loaded configuration to the current schema.
//
// A legacy-sized list is replaced by the defaults, keeping only visible and
// width of records whose name matches a default; unmatched records are
// dropped. A shorter list is padded from the defaults in default order.
// Longer lists are kept. The result is stably sorted by order.
func Migrate(loaded Configuration) Configuration {
	defaults := DefaultConfiguration()
	var out Configuration

	switch n := len(loaded.Services); {
	case IsLegacyCount(n):
		out = defaults
		for _, old := range loaded.Services {
			if i := out.Find(old.Name); i >= 0 {
				out.Services[i].Visible = old.Visible
				out.Services[i].Width = old.Width
			}
		}
	case n < SlotCount:
		out = loaded.Clone()
		for len(out.Services) < SlotCount && len(out.Services) < len(defaults.Services) {
			out.Services = append(out.Services, defaults.Services[len(out.Services)])
		}
	default:
		out = loaded.Clone()
	}

	out.Browser = loaded.Browser
	sort.SliceStable(out.Services, func(i, j int) bool {
		return out.Services[i].Order < out.Services[j].Order
	})
	return out
}

// Normalize rewrites every order field to its sequence index.
func Normalize(cfg *Configuration) {
	for i := range cfg.Services {
		cfg.Services[i].Order = i
	}
}
