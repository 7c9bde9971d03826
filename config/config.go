// Package config loads the reports2sheets configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/reports2sheets/reports2sheets/report"
)

type Config struct {
	Google     Google     `toml:"google" yaml:"google"`
	PlanMill   PlanMill   `toml:"planmill" yaml:"planmill"`
	OfficeVibe OfficeVibe `toml:"officevibe" yaml:"officevibe"`
	Freshdesk  Freshdesk  `toml:"freshdesk" yaml:"freshdesk"`
	Run        Run        `toml:"run" yaml:"run"`
}

type Google struct {
	Credentials string `toml:"credentials" yaml:"credentials"`
	Tokens      string `toml:"tokens" yaml:"tokens"`
	Spreadsheet string `toml:"spreadsheet" yaml:"spreadsheet"`
}

type PlanMill struct {
	ClientID     string `toml:"client-id" yaml:"client-id"`
	ClientSecret string `toml:"client-secret" yaml:"client-secret"`
	TokenURL     string `toml:"token-url" yaml:"token-url"`
	APIURL       string `toml:"api-url" yaml:"api-url"`
}

type OfficeVibe struct {
	APIKey string   `toml:"api-key" yaml:"api-key"`
	APIURL string   `toml:"api-url" yaml:"api-url"`
	Groups []string `toml:"groups" yaml:"groups"`
}

type Freshdesk struct {
	APIKey string `toml:"api-key" yaml:"api-key"`
	Domain string `toml:"domain" yaml:"domain"`
	APIURL string `toml:"api-url" yaml:"api-url"`
}

type Run struct {
	Reports  []string `toml:"reports" yaml:"reports"`
	Clear    bool     `toml:"clear" yaml:"clear"`
	Workbook string   `toml:"workbook" yaml:"workbook"`
}

const (
	DefaultOfficeVibeURL = "https://app.officevibe.com/api/v2/"
)

// Default returns a configuration with the default run order and API locations.
func Default() *Config {
	reports := []string{}
	for _, k := range report.DefaultRunOrder {
		reports = append(reports, k.String())
	}

	return &Config{
		OfficeVibe: OfficeVibe{
			APIURL: DefaultOfficeVibeURL,
		},
		Run: Run{
			Reports: reports,
		},
	}
}

// Load reads a TOML or YAML configuration file (selected by the file extension) over
// the defaults. ${VAR} references in string values are replaced from the environment.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, c); err != nil {
			return nil, fmt.Errorf("invalid YAML configuration %s (%w)", path, err)
		}

	default:
		if err := toml.Unmarshal(bytes, c); err != nil {
			return nil, fmt.Errorf("invalid TOML configuration %s (%w)", path, err)
		}
	}

	c.expand(os.Getenv)

	return c, nil
}

var variables = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expand replaces ${VAR} references with the variable value. Any other '$' is literal.
func (c *Config) expand(lookup func(string) string) {
	for _, p := range []*string{
		&c.Google.Credentials,
		&c.Google.Tokens,
		&c.Google.Spreadsheet,
		&c.PlanMill.ClientID,
		&c.PlanMill.ClientSecret,
		&c.PlanMill.TokenURL,
		&c.PlanMill.APIURL,
		&c.OfficeVibe.APIKey,
		&c.OfficeVibe.APIURL,
		&c.Freshdesk.APIKey,
		&c.Freshdesk.Domain,
		&c.Freshdesk.APIURL,
		&c.Run.Workbook,
	} {
		*p = variables.ReplaceAllStringFunc(*p, func(v string) string {
			return lookup(variables.FindStringSubmatch(v)[1])
		})
	}
}

// SpreadsheetID returns the spreadsheet ID, extracted from the spreadsheet URL if the
// configuration has a URL rather than an ID.
func (c *Config) SpreadsheetID() (string, error) {
	s := strings.TrimSpace(c.Google.Spreadsheet)
	if s == "" {
		return "", fmt.Errorf("missing spreadsheet")
	}

	if strings.HasPrefix(s, "https://") {
		match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(s)
		if len(match) < 2 || match[1] == "" {
			return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
		}

		return match[1], nil
	}

	return s, nil
}

// FreshdeskURL returns the configured Freshdesk API URL or the default for the domain.
func (c *Config) FreshdeskURL() string {
	if c.Freshdesk.APIURL != "" {
		return c.Freshdesk.APIURL
	}

	return fmt.Sprintf("https://%s.freshdesk.com/api/v2/", c.Freshdesk.Domain)
}

// Validate checks that every source used by the run list is configured.
func (c *Config) Validate() error {
	specs, err := report.Specs(c.Run.Reports)
	if err != nil {
		return err
	}

	missing := []string{}
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	sources := map[report.Source]bool{}
	for _, spec := range specs {
		sources[spec.Source] = true
	}

	if sources[report.PlanMill] {
		check("planmill.client-id", c.PlanMill.ClientID)
		check("planmill.client-secret", c.PlanMill.ClientSecret)
		check("planmill.token-url", c.PlanMill.TokenURL)
		check("planmill.api-url", c.PlanMill.APIURL)
	}

	if sources[report.OfficeVibe] {
		check("officevibe.api-key", c.OfficeVibe.APIKey)
		check("officevibe.api-url", c.OfficeVibe.APIURL)
	}

	if sources[report.Freshdesk] {
		check("freshdesk.api-key", c.Freshdesk.APIKey)
		if c.Freshdesk.APIURL == "" {
			check("freshdesk.domain", c.Freshdesk.Domain)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}
