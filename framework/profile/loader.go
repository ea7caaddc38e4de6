package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"
)

// Load reads a single profile from a YAML file
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	if err := Validate(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return &profile, nil
}

// LoadSet reads a capabilities file holding one profile per mode.
// Modes missing from the file keep their built-in profile.
func LoadSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read capabilities file %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse capabilities file %s: %w", path, err)
	}

	set := Defaults()
	for key, p := range file.Profiles {
		mode := Mode(strings.ToLower(strings.TrimSpace(key)))
		if mode != ModeStandard && mode != ModeHeadless {
			return nil, fmt.Errorf("capabilities file %s: unknown mode %q (standard or headless)", path, key)
		}
		if p == nil {
			return nil, fmt.Errorf("capabilities file %s: profile %q is empty", path, key)
		}
		if p.Name == "" {
			p.Name = string(mode)
		}
		if err := Validate(p); err != nil {
			return nil, fmt.Errorf("capabilities file %s: profile %q: %w", path, key, err)
		}
		set[mode] = p
	}

	return set, nil
}

// LoadAll reads all YAML profiles from a directory
func LoadAll(dir string) ([]*Profile, error) {
	names, err := ListProfileNames(dir)
	if err != nil {
		return nil, err
	}

	profiles := make([]*Profile, 0, len(names))
	for _, name := range names {
		profile, err := Load(profilePath(dir, name))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// LoadByNames loads specific profiles by name from a directory
func LoadByNames(dir string, names []string) ([]*Profile, error) {
	var profiles []*Profile
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		profile, err := Load(profilePath(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load profile %q: %w", name, err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

func profilePath(dir, name string) string {
	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Join(dir, name+".yml")
	}
	return path
}

// Validate checks that a profile has all required fields
func Validate(p *Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.BrowserName == "" {
		return fmt.Errorf("browserName is required")
	}

	if me := p.MobileEmulation; me != nil {
		if me.Width == 0 || me.Height == 0 {
			return fmt.Errorf("mobileEmulation.width and mobileEmulation.height must be positive")
		}
		if me.PixelRatio <= 0 {
			return fmt.Errorf("mobileEmulation.pixelRatio must be positive")
		}
	}

	for typ, level := range p.Logging {
		switch strings.ToLower(typ) {
		case "browser", "client", "driver", "performance", "server":
		default:
			return fmt.Errorf("logging type %q is not supported", typ)
		}
		switch strings.ToUpper(level) {
		case "OFF", "SEVERE", "WARNING", "INFO", "DEBUG", "ALL":
		default:
			return fmt.Errorf("logging level %q for %s is not supported", level, typ)
		}
	}

	return nil
}

// ListProfileNames returns the names of all profiles in a directory
func ListProfileNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") {
			names = append(names, strings.TrimSuffix(name, ".yaml"))
		} else if strings.HasSuffix(name, ".yml") {
			names = append(names, strings.TrimSuffix(name, ".yml"))
		}
	}
	sort.Strings(names)

	return names, nil
}
