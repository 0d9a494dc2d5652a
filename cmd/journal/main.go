package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Rafailong/clojure-journal/cmd/journal/commands"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli commands.CLI
	global := &commands.Global{Stdout: stdout, Stderr: stderr}

	parser, err := kong.New(&cli,
		kong.Name("journal"),
		kong.Description("Load, check and deploy the Clojure Journal Docusaurus site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global, &cli),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return ferrors.NewCLIErrorAdapter(false, nil).WithOutput(stderr).HandleError(
			ferrors.InternalError("failed to build command line parser").WithCause(err).Build())
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return ferrors.NewCLIErrorAdapter(false, nil).WithOutput(stderr).HandleError(
			ferrors.ValidationError(err.Error()).Build())
	}

	err = kctx.Run()
	return ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).WithOutput(stderr).HandleError(err)
}
