package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/reports2sheets/reports2sheets/config"
)

var AuthoriseCmd = Authorise{
	workdir:     DEFAULT_WORKDIR,
	credentials: "",
}

type Authorise struct {
	workdir     string
	credentials string
	debug       bool
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises reports2sheets to update a Google Sheets spreadsheet"
}

func (cmd *Authorise) Usage() string {
	return "[--credentials <file>]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Authorises reports2sheets to update a Google Sheets spreadsheet using OAuth2 client")
	fmt.Println("  credentials and saves the access tokens to the tokens directory. Not required for")
	fmt.Println("  service account credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s authorise --credentials \"credentials.json\"\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file. Defaults to the configured credentials")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	conf := config.Default()
	if _, err := os.Stat(options.Config); err == nil {
		if conf, err = config.Load(options.Config); err != nil {
			return fmt.Errorf("could not load configuration (%v)", err)
		}
	}

	file := cmd.credentials
	if strings.TrimSpace(file) == "" {
		file = credentials(conf)
	}

	c := command{workdir: cmd.workdir}
	tokens := tokenFile(file, c.tokens(conf))

	if cmd.debug {
		debugf("Credentials %s  tokens:%s", file, tokens)
	}

	if err := authenticate(file, SHEETS, tokens); err != nil {
		return fmt.Errorf("Authorisation error (%v)", err)
	}

	return nil
}

func authenticate(credentials, scope, tokens string) error {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return err
	}

	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return err
	}

	token, err := getTokenFromWeb(config)
	if err != nil {
		return err
	}

	return saveToken(tokens, token)
}

// Request a token from the web, then returns the retrieved token.
func getTokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Printf("Go to the following link in your browser then type the authorization code: \n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("Unable to read authorization code (%v)", err)
	}

	token, err := config.Exchange(context.TODO(), code)
	if err != nil {
		return nil, fmt.Errorf("Unable to retrieve token from web (%v)", err)
	}

	return token, nil
}
