package commands

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/reports2sheets/reports2sheets/config"
	"github.com/reports2sheets/reports2sheets/report"
	"github.com/reports2sheets/reports2sheets/source"
)

const APP = "reports2sheets"

const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

type Options struct {
	Config string
	Debug  bool
}

// command holds the options common to the commands that run the report pipeline.
type command struct {
	workdir string
	reports string
	config  string
	debug   bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&c.reports, "reports", c.reports, "Comma separated list of reports, in worksheet order. Defaults to the configured run list")

	return flagset
}

// load reads the configuration file and applies the command line overrides.
func (c *command) load(options *Options) (*config.Config, []report.Spec, error) {
	c.config = options.Config
	c.debug = options.Debug

	conf, err := config.Load(c.config)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load configuration (%v)", err)
	}

	if strings.TrimSpace(c.reports) != "" {
		conf.Run.Reports = []string{}
		for _, id := range strings.Split(c.reports, ",") {
			if id = strings.TrimSpace(id); id != "" {
				conf.Run.Reports = append(conf.Run.Reports, id)
			}
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, nil, err
	}

	specs, err := report.Specs(conf.Run.Reports)
	if err != nil {
		return nil, nil, err
	}

	if c.debug {
		debugf("Configuration %s  reports:%v", c.config, conf.Run.Reports)
	}

	return conf, specs, nil
}

func credentials(conf *config.Config) string {
	if strings.TrimSpace(conf.Google.Credentials) != "" {
		return conf.Google.Credentials
	}

	return DEFAULT_CREDENTIALS
}

func (c *command) tokens(conf *config.Config) string {
	if conf.Google.Tokens != "" {
		return conf.Google.Tokens
	}

	return filepath.Join(c.workdir, ".google")
}

// endpoints builds the API locations and credentials for each report source.
func endpoints(conf *config.Config, client *http.Client) map[report.Source]source.Endpoint {
	return map[report.Source]source.Endpoint{
		report.PlanMill: {
			BaseURL: conf.PlanMill.APIURL,
			Credential: source.NewClientCredentials(
				report.PlanMill.String(),
				conf.PlanMill.ClientID,
				conf.PlanMill.ClientSecret,
				conf.PlanMill.TokenURL,
				client),
		},

		report.OfficeVibe: {
			BaseURL: conf.OfficeVibe.APIURL,
			Credential: source.BearerKey{
				Source: report.OfficeVibe.String(),
				Key:    conf.OfficeVibe.APIKey,
			},
		},

		report.Freshdesk: {
			BaseURL: conf.FreshdeskURL(),
			Credential: source.BasicKey{
				Source: report.Freshdesk.String(),
				Key:    conf.Freshdesk.APIKey,
			},
		},
	}
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}
