// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

// setupCommand writes a starter config file and prepares the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage: "Create config.toml, initialize the database and run migrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Revert the most recent migration instead",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication against the Yoto identity provider
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Yoto authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in through the browser (OAuth2 authorization code + PKCE)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL instead of opening a browser",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the browser callback",
						Value: 5 * time.Minute,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show whether a token is stored and when it expires",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Remove stored tokens",
				Action: r.AuthLogout,
			},
		},
	}
}

// cardsCommand handles card listing and inspection
func cardsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cards",
		Usage: "Browse your Yoto cards",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your cards with their details",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: txt, json, csv or md",
						Value:   "txt",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to this file instead of stdout",
					},
				},
				Action: r.CardsList,
			},
			{
				Name:  "show",
				Usage: "Show one card",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "card-id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.CardsShow,
			},
		},
	}
}

// uploadCommand replaces a card's audio with a local file
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Upload an audio file and make it the only track on a card",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "card",
				Usage:    "Card ID to update",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "New card title (defaults to the file name)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Override the configured Yoto API base URL",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the saved card as JSON",
			},
		},
		Action: r.Upload,
	}
}

// historyCommand shows locally recorded uploads
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded uploads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "card",
				Usage: "Only show uploads to this card",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Only show uploads with this status (pending, complete, failed)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of uploads to show",
				Value: 20,
			},
		},
		Action: r.History,
	}
}

// tuiCommand returns the top-level TUI command for interactive uploads.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive card picker and uploader",
		Action:  r.TUI,
	}
}
