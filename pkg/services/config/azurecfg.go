package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const DefaultProfile = "default"

// Profile holds the scan defaults stored for one profile in the Azure
// config file: the tenant and the subscriptions to audit.
type Profile struct {
	TenantID        string
	SubscriptionIDs []string
}

// Registry reads scan profiles from an ini-style Azure config file. It is
// the fallback source for tenant/subscription IDs when flags are omitted.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultPath returns the conventional Azure config location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".azure", "config"), nil
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	if name == "" {
		name = DefaultProfile
	}

	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found in Azure config: %w", name, err)
	}

	profile := &Profile{
		TenantID: section.Key("tenant").String(),
	}

	// Either a single "subscription" key or a comma-separated
	// "subscriptions" list; order is preserved as written.
	if subs := section.Key("subscriptions").String(); subs != "" {
		for _, sub := range strings.Split(subs, ",") {
			if trimmed := strings.TrimSpace(sub); trimmed != "" {
				profile.SubscriptionIDs = append(profile.SubscriptionIDs, trimmed)
			}
		}
	} else if sub := section.Key("subscription").String(); sub != "" {
		profile.SubscriptionIDs = []string{sub}
	}

	return profile, nil
}
