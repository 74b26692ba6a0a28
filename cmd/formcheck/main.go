// Command formcheck fills a form from the terminal and runs it through the
// same controller as the browser, against a running server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gookit/color"
	"github.com/urfave/cli/v2"

	"github.com/oarkflow/authforms/pkg/client"
	"github.com/oarkflow/authforms/pkg/client/console"
	"github.com/oarkflow/authforms/pkg/forms"
)

func main() {
	set := forms.Default()
	commands := make([]*cli.Command, 0, len(set))
	for _, name := range set.Names() {
		commands = append(commands, formCommand(name))
	}
	app := &cli.App{
		Name:                 "formcheck",
		Usage:                "validate and submit the login or registration form",
		EnableBashCompletion: true,
		Suggest:              true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "base URL of the server",
				Value:   "http://localhost:3000",
				EnvVars: []string{"FORMCHECK_SERVER"},
				Aliases: []string{"s"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "verification request timeout, 0 waits forever",
				Value: 0,
			},
		},
		Commands: commands,
	}
	if err := app.Run(os.Args); err != nil {
		color.Red.Println(err)
		os.Exit(1)
	}
}

func formCommand(name string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: fmt.Sprintf("fill and submit the %s form", name),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "preset a field as name=value, may be repeated",
			},
			&cli.BoolFlag{
				Name:  "no-input",
				Usage: "do not prompt for missing fields",
			},
		},
		Action: func(c *cli.Context) error {
			def, err := forms.Lookup(name)
			if err != nil {
				return err
			}
			values, err := parseSets(c.StringSlice("set"))
			if err != nil {
				return err
			}
			rc := resty.New().SetBaseURL(c.String("server"))
			if timeout := c.Duration("timeout"); timeout > 0 {
				rc.SetTimeout(timeout)
			}
			form := console.NewForm(rc, def.Action, values, os.Stdout)
			if !c.Bool("no-input") {
				if err := console.Prompt(def, form); err != nil {
					return err
				}
			}
			return submit(c.Context, def, form, rc)
		},
	}
}

func submit(ctx context.Context, def forms.Definition, form *console.Form, rc *resty.Client) error {
	nav := console.NewNavigator(os.Stdout)
	controller := client.New(def, form, console.NewRenderer(os.Stdout), nav,
		client.NewHTTPVerifierWithClient(rc),
		client.WithLogger(log.New(os.Stderr, "formcheck: ", log.LstdFlags)),
		client.WithTransportMessage(client.DefaultTransportMessage),
	)
	start := time.Now()
	state := controller.Submit(ctx)
	fmt.Printf("%s %s in %s\n", def.Name, state, time.Since(start).Round(time.Millisecond))
	if state != client.StateRedirected {
		return cli.Exit("", 1)
	}
	return nil
}

// parseSets turns name=value pairs into field values.
func parseSets(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}
