package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"

	"golang.org/x/oauth2"

	"github.com/twystd/sheets-merge/gsheets"
)

var AuthoriseCmd = Authorise{}

type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises sheets-merge to access Google Sheets and Google Drive using an OAuth client"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Authorises sheets-merge to access Google Sheets and Google Drive on behalf of a Google account")
	fmt.Println("  and stores the OAuth tokens for use by the other commands. Not required when the credentials")
	fmt.Println("  file is a service account key.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheets-merge authorise --credentials "credentials.json"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok {
			cmd.debug = options.Debug
		}
	}

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	config, err := gsheets.OAuthConfig(cmd.credentials, gsheets.SHEETS, gsheets.DRIVE)
	if err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	}

	token, err := authenticate(context.Background(), config)
	if err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	} else if token == nil {
		return nil
	}

	tokens := cmd.tokensFile()
	if err := gsheets.SaveToken(tokens, token); err != nil {
		return err
	}

	infof("Saved OAuth tokens to %v", tokens)

	return nil
}

// authenticate runs the OAuth 'loopback' flow: the browser is redirected to a local HTTP server
// that receives the authorisation code. Returns a nil token if cancelled with CTRL-C.
func authenticate(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	config.RedirectURL = fmt.Sprintf("http://%v/", listener.Addr())

	state := fmt.Sprintf("sheets-merge-%v", os.Getpid())
	authorised := make(chan string, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		code := rq.FormValue("code")

		if rq.FormValue("state") != state || code == "" {
			http.Error(w, "Invalid authorisation response", http.StatusBadRequest)
			return
		}

		fmt.Fprintln(w, "sheets-merge has been authorised - you can close this window")

		select {
		case authorised <- code:
		default:
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// ... open OAuth2 URL in browser
	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	fmt.Println()
	fmt.Println("  Open the following link in your browser to authorise sheets-merge:")
	fmt.Println()
	fmt.Printf("  %v\n", url)
	fmt.Println()

	if err := browse(url); err != nil {
		warnf("Could not open the authorisation page in your browser - please open the link manually")
	}

	// ... wait for authorisation
	select {
	case <-interrupt:
		fmt.Printf("\n.. cancelled\n\n")
		return nil, nil

	case code := <-authorised:
		return config.Exchange(ctx, code)
	}
}

func browse(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()

	case "darwin":
		return exec.Command("open", url).Start()

	default:
		return exec.Command("xdg-open", url).Start()
	}
}
