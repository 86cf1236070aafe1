package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/app"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/config"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/page"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
)

var errUsage = errors.New("usage")

// cli carries what every subcommand needs.
type cli struct {
	app    *app.App
	pages  page.Deps
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, c *cli, args []string) error
}

var commands = map[string]command{
	"login":            {"sign in and store the credential", cmdLogin},
	"register":         {"create a foster or volunteer account", cmdRegister},
	"logout":           {"forget the stored credential", cmdLogout},
	"whoami":           {"show the signed-in user", cmdWhoami},
	"profile":          {"show or update your profile", cmdProfile},
	"password":         {"change your password", cmdPassword},
	"dogs":             {"list dogs with optional filters", cmdDogs},
	"dog":              {"show a dog, toggle favourite", cmdDog},
	"add-dog":          {"create a dog listing (shelter admins)", cmdAddDog},
	"poster":           {"download a dog's adoption poster", cmdPoster},
	"search":           {"search dogs, breeds or locations", cmdSearch},
	"favorites":        {"list, add or remove favourites", cmdFavorites},
	"apply":            {"apply to foster a dog", cmdApply},
	"applications":     {"list your applications or review them", cmdApplications},
	"shelter-register": {"apply for a shelter account", cmdShelterRegister},
	"shelters":         {"review shelter applications (admins)", cmdShelters},
	"approve":          {"approve or reject a shelter (admins)", cmdApprove},
	"external":         {"list or sync external shelters (admins)", cmdExternal},
	"users":            {"list users (admins)", cmdUsers},
	"edit-user":        {"edit a user (admins)", cmdEditUser},
	"delete-user":      {"delete a user (admins)", cmdDeleteUser},
	"stats":            {"show admin statistics", cmdStats},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: foster <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-17s %s\n", n, commands[n].summary)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		usage(stderr)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg, app.Options{Notices: stderr})
	if err != nil {
		return err
	}
	defer closeInto(&err, a)

	c := &cli{
		app:    a,
		pages:  a.Pages(),
		stdin:  bufio.NewReader(stdin),
		stdout: stdout,
		stderr: stderr,
	}
	navs := len(a.Router.History())
	err = cmd.run(ctx, c, args[1:])
	switch {
	case errors.Is(err, flag.ErrHelp):
		return errUsage
	case errors.Is(err, page.ErrNotAuthenticated):
		return fmt.Errorf("%w: run `foster login`", page.ErrNotAuthenticated)
	case err != nil && args[0] != "login" && len(a.Router.History()) > navs && a.Router.Current() == view.RouteLogin:
		// a 401 mid-command already dropped the session
		return fmt.Errorf("%w: run `foster login`", page.ErrNotAuthenticated)
	}
	return err
}

func newFlags(c *cli, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("foster "+name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// closeInto closes c and appends its error to *errp.
func closeInto(errp *error, c io.Closer) {
	multierr.AppendInvoke(errp, multierr.Close(c))
}

// printJSON writes v to stdout, indented.
func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ask returns val, or reads one line from stdin when val is empty.
func (c *cli) ask(prompt, val string) (string, error) {
	if val != "" {
		return val, nil
	}
	fmt.Fprint(c.stderr, prompt+": ")
	line, err := c.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", prompt, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// formError turns an inline page error into a command error.
func formError(msg string, err error) error {
	if err == nil && msg == "" {
		return nil
	}
	if msg != "" {
		return errors.New(msg)
	}
	return err
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
