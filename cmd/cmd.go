package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gee-community/eeconv/config"
	"github.com/gee-community/eeconv/convert"
	"github.com/gee-community/eeconv/fetch"
	"github.com/gee-community/eeconv/notebook"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the eeconv CLI with the given version string.
func Execute(version string) {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}
	notebook.ConvertTool = config.C.ConvertTool
	notebook.JupyterTool = config.C.JupyterTool

	cmd := &cli.Command{
		Name:                   "eeconv",
		Usage:                  "Convert Earth Engine JavaScript to Python scripts and Jupyter notebooks",
		Version:                version,
		UseShortOptionHandling: true,
		// Allow `eeconv script.js` as shorthand for `eeconv convert script.js`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && strings.HasSuffix(cmd.Args().First(), ".js") {
				conv := &convert.Converter{Plugin: config.C.Plugin, RepoURL: config.C.RepoURL}
				_, err := conv.File(cmd.Args().First(), "")
				return err
			}
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Convert a .js file or a directory tree of .js files to Python",
				ArgsUsage: "<file.js | directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory",
					},
					&cli.BoolFlag{
						Name:  "no-plugin",
						Usage: "Omit the QGIS ee_plugin import",
					},
					&cli.StringFlag{
						Name:  "repo",
						Usage: "Repository base URL recorded in provenance comments",
					},
				},
				Action: convertAction,
			},
			{
				Name:      "notebook",
				Usage:     "Assemble converted Python scripts into Jupyter notebooks",
				ArgsUsage: "<file.py | directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "Notebook template path",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output notebook file or directory",
					},
					&cli.StringFlag{
						Name:  "user",
						Usage: "GitHub account for badge URLs",
					},
					&cli.StringFlag{
						Name:  "repo",
						Usage: "GitHub repository for badge URLs",
					},
				},
				Action: notebookAction,
			},
			{
				Name:      "exec",
				Usage:     "Execute a notebook (or every notebook under a directory) in place",
				ArgsUsage: "<file.ipynb | directory>",
				Action:    execAction,
			},
			{
				Name:      "update-header",
				Usage:     "Rewrite binder and Colab badge URLs of existing notebooks",
				ArgsUsage: "<file.ipynb | directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "GitHub account"},
					&cli.StringFlag{Name: "repo", Usage: "GitHub repository"},
				},
				Action: updateHeaderAction,
			},
			{
				Name:      "fetch",
				Usage:     "Download a file, extracting zip and tar archives",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file name",
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Download directory",
						Value: ".",
					},
					&cli.BoolFlag{
						Name:  "no-extract",
						Usage: "Keep archives unextracted",
					},
				},
				Action: fetchAction,
			},
			{
				Name:      "app",
				Usage:     "Download the JavaScript source of a public Earth Engine App",
				ArgsUsage: "<app-url>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output .js file",
					},
				},
				Action: appAction,
			},
			{
				Name:      "gdrive",
				Usage:     "Download a file shared via a Google Drive link",
				ArgsUsage: "<share-url>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file name",
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Download directory",
						Value: ".",
					},
					&cli.BoolFlag{
						Name:  "no-extract",
						Usage: "Keep archives unextracted",
					},
				},
				Action: gdriveAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: eeconv convert [-o output] <file.js | directory>")
	}
	target := cmd.Args().First()

	repoURL := cmd.String("repo")
	if repoURL == "" {
		repoURL = config.C.RepoURL
	}
	conv := &convert.Converter{
		Plugin:  config.C.Plugin && !cmd.Bool("no-plugin"),
		RepoURL: repoURL,
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", target, err)
	}
	if !info.IsDir() {
		_, err := conv.File(target, cmd.String("output"))
		return err
	}

	converted, failed, err := conv.Dir(target, cmd.String("output"))
	if err != nil {
		return err
	}
	printSummary("converted", converted, failed)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func notebookAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: eeconv notebook [-t template] [-o output] <file.py | directory>")
	}
	target := cmd.Args().First()

	template := cmd.String("template")
	if template == "" {
		template = config.C.Template
	}
	if template == "" {
		return fmt.Errorf("no notebook template: pass --template or set template in the config file")
	}
	user := cmd.String("user")
	if user == "" {
		user = config.C.User
	}
	repo := cmd.String("repo")
	if repo == "" {
		repo = config.C.Repo
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", target, err)
	}
	if !info.IsDir() {
		return notebook.FromScript(target, template, cmd.String("output"), user, repo)
	}

	converted, failed, err := notebook.FromScriptDir(target, template, cmd.String("output"), user, repo)
	if err != nil {
		return err
	}
	printSummary("assembled", converted, failed)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func execAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: eeconv exec <file.ipynb | directory>")
	}
	target := cmd.Args().First()

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", target, err)
	}
	if !info.IsDir() {
		return notebook.Execute(target)
	}

	executed, failed, err := notebook.ExecuteDir(target)
	if err != nil {
		return err
	}
	printSummary("executed", executed, failed)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func updateHeaderAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: eeconv update-header [--user u] [--repo r] <file.ipynb | directory>")
	}
	target := cmd.Args().First()

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", target, err)
	}
	if info.IsDir() {
		return notebook.UpdateHeaderDir(target, cmd.String("user"), cmd.String("repo"))
	}
	return notebook.UpdateHeader(target, cmd.String("user"), cmd.String("repo"))
}

func fetchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: eeconv fetch [-o name] [--dir d] <url>")
	}
	_, err := fetch.URL(cmd.Args().First(), cmd.String("output"), cmd.String("dir"), !cmd.Bool("no-extract"))
	return err
}

func appAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: eeconv app [-o file.js] <app-url>")
	}
	out, err := fetch.App(cmd.Args().First(), cmd.String("output"))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "App source saved to: %s\n", out)
	return nil
}

func gdriveAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: eeconv gdrive [-o name] [--dir d] <share-url>")
	}
	_, err := fetch.GDrive(cmd.Args().First(), cmd.String("output"), cmd.String("dir"), !cmd.Bool("no-extract"))
	return err
}

// printSummary reports batch results, coloring the failure count when
// stderr is an interactive terminal.
func printSummary(verb string, ok, failed int) {
	colorFail, colorReset := "\033[31m", "\033[0m"
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd())) {
		colorFail, colorReset = "", ""
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d files %s, %s%d failed%s\n", ok, verb, colorFail, failed, colorReset)
		return
	}
	fmt.Fprintf(os.Stderr, "%d files %s\n", ok, verb)
}
