package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/workdlabs/workd/internal/checkout"
	"github.com/workdlabs/workd/internal/config"
	"github.com/workdlabs/workd/internal/logging"
	"github.com/workdlabs/workd/internal/session"
	"github.com/workdlabs/workd/internal/tui"
	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "workd: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.File, cfg.Log.Level)

	store := session.NewStore(cfg.StateDir)
	store.Initialize()

	// WORKD_TOKEN beats the stored session, so scripts can pin a credential.
	token := os.Getenv("WORKD_TOKEN")
	if token == "" {
		if sess := store.Current(); sess != nil {
			token = sess.Token
		}
	}

	api := client.New(cfg.API.URL, token, log)
	api.SetTimeout(cfg.API.Timeout)

	args := os.Args[1:]
	if len(args) == 0 {
		if err := runTUI(cfg, api, store, log); err != nil {
			fmt.Fprintf(os.Stderr, "workd: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch args[0] {
	case "login":
		err = runLogin(api, store)
	case "logout":
		err = runLogout(api, store)
	case "whoami":
		err = runWhoami(store)
	case "version":
		fmt.Println("workd " + version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "workd: unknown command %q\n\n", args[0])
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "workd: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg config.Config, api *client.Client, store *session.Store, log *logrus.Logger) error {
	provider := checkout.NewHosted(cfg.Checkout.URL, log)
	app := tui.NewApp(api, store, provider, log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// runLogin prompts for credentials on the terminal, authenticates, and
// persists the session for subsequent runs.
func runLogin(api *client.Client, store *session.Store) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	resp, err := api.Login(context.Background(), email, string(pw))
	if err != nil {
		return fmt.Errorf("login failed: %s", client.Message(err, err.Error()))
	}

	identity := domain.Identity{ID: resp.ID, Name: resp.Name, Role: domain.ParseRole(resp.Role)}
	api.SetToken(resp.Token)
	if err := store.Login(identity, resp.Token); err != nil {
		fmt.Fprintf(os.Stderr, "warning: session will not survive restart: %v\n", err)
	}
	printGreeting(identity)
	return nil
}

// runLogout clears the local session and best-effort invalidates it
// server-side.
func runLogout(api *client.Client, store *session.Store) error {
	if store.Current() == nil {
		fmt.Println(dimText("not logged in"))
		return nil
	}
	if err := api.Logout(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, dimText("server logout failed, clearing local session anyway"))
	}
	if err := store.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runWhoami(store *session.Store) error {
	sess := store.Current()
	if sess == nil {
		printLoggedOut()
		return nil
	}
	printGreeting(sess.Identity)
	return nil
}

func usage() {
	fmt.Println(`workd - freelance marketplace client

usage:
  workd            open the dashboard
  workd login      sign in and store the session
  workd logout     clear the stored session
  workd whoami     show the active session
  workd version    print the version

environment:
  WORKD_TOKEN      API token, overrides the stored session
  WORKD_API_URL    backend base URL`)
}
