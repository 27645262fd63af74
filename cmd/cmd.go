// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// exportCommand exports a Spotify playlist to CSV.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "export",
		Aliases: []string{"exp"},
		Usage:   "Export a Spotify playlist's tracks to CSV",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "playlist",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "market",
				Aliases: []string{"m"},
				Usage:   "Spotify market code for track relinking",
				Value:   r.config.Defaults.Market,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output CSV path (default: derived from the playlist name)",
			},
			&cli.BoolFlag{
				Name:  "include-local",
				Usage: "Include local files from the playlist",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Do not save the export to the local library",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output export summary as JSON",
			},
		},
		Action: r.Export,
	}
}

// cardsCommand generates bingo cards from an exported track pool.
func cardsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "cards",
		Aliases: []string{"gen"},
		Usage:   "Generate 4x4 bingo card PDFs from a track CSV",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "source",
			},
		},
		Flags: append(cardFlags(r),
			&cli.BoolFlag{
				Name:  "from-library",
				Usage: "Treat the source as a playlist name in the local library",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output generation summary as JSON",
			},
		),
		Action: r.Cards,
	}
}

// runCommand performs the full export-then-cards pipeline.
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Export a playlist and generate bingo cards in one pass",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "playlist",
			},
		},
		Flags: append(cardFlags(r),
			&cli.StringFlag{
				Name:    "market",
				Aliases: []string{"m"},
				Usage:   "Spotify market code for track relinking",
				Value:   r.config.Defaults.Market,
			},
			&cli.BoolFlag{
				Name:  "include-local",
				Usage: "Include local files from the playlist",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output pipeline summary as JSON",
			},
		),
		Action: r.Run,
	}
}

// cardFlags are the sampling and rendering flags shared by cards and run.
func cardFlags(r *Runner) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "cards",
			Aliases: []string{"n"},
			Usage:   "Number of cards to generate",
			Value:   r.config.Defaults.Cards,
		},
		&cli.BoolFlag{
			Name:  "no-repeat",
			Usage: "No track may appear on more than one card",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "Sampling seed for reproducible cards",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "Card page title",
		},
		&cli.StringFlag{
			Name:  "subtitle",
			Usage: "Card page subtitle",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output PDF path (default: derived from the source name)",
		},
	}
}

// authCommand handles Spotify OAuth2 authorization.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Auth,
	}
}

// setupCommand initializes the config file, the library database and output directories.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the library database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// libraryCommand handles the local export library.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage locally cached playlist exports",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached playlist exports",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:  "show",
				Usage: "Show a cached playlist's tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryShow,
			},
			{
				Name:  "rm",
				Usage: "Remove a cached playlist export",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.LibraryRemove,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive card generation.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive bingo card wizard",
		Action:  r.TUI,
	}
}
