package profile

// Nexus6UserAgent is the user agent reported by the emulated device
const Nexus6UserAgent = "Mozilla/5.0 (Linux; Android 5.1.1; Nexus 6 Build/LYZ28E) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/44.0.2403.20 Mobile Safari/537.36 WebDriver"

// Standard is the default profile: a small phone-sized Chrome window with
// Nexus 6 emulation and browser/client logging at INFO.
func Standard() *Profile {
	return &Profile{
		Name:                string(ModeStandard),
		Description:         "Chrome with Nexus 6 mobile emulation",
		BrowserName:         "chrome",
		AcceptInsecureCerts: true,
		Args: []string{
			"--window-size=430,870",
			"--disable-infobars",
		},
		MobileEmulation: &MobileEmulation{
			UserAgent:  Nexus6UserAgent,
			Width:      412,
			Height:     732,
			PixelRatio: 3.5,
		},
		Logging: map[string]string{
			"browser": "INFO",
			"client":  "INFO",
		},
	}
}

// Headless is Standard plus the headless flag
func Headless() *Profile {
	p := Standard()
	p.Name = string(ModeHeadless)
	p.Description = "Headless Chrome with Nexus 6 mobile emulation"
	p.Args = append(p.Args, "headless")
	return p
}

// Defaults returns a fresh set of the built-in profiles
func Defaults() Set {
	return Set{
		ModeStandard: Standard(),
		ModeHeadless: Headless(),
	}
}

// Get returns the profile for mode, falling back to the built-in one
func (s Set) Get(mode Mode) *Profile {
	if p, ok := s[mode]; ok && p != nil {
		return p
	}
	if mode == ModeHeadless {
		return Headless()
	}
	return Standard()
}
