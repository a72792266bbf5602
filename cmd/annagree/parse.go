package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/plandok/annagree/pipeline"
)

// Option structs for subcommands that have flags
type RunOptions struct {
	OutPath   string
	DBPath    string
	KeepEmpty bool
}

func parseMainArgs(args []string, ui UI) (string, []string, error) {
	fs := flag.NewFlagSet("annagree", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setupUsage(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return "", nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return "", nil, errors.New("no command provided")
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]
	return cmd, cmdArgs, nil
}

func parseRunArgs(args []string, ui UI) (RunOptions, []string, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts RunOptions
	fs.StringVar(&opts.OutPath, "out", pipeline.DefaultOutPath, "Path of the exported annotation table")
	fs.StringVar(&opts.OutPath, "o", pipeline.DefaultOutPath, "alias for -out")
	fs.StringVar(&opts.DBPath, "db", "", "Additionally export the merged corpus to this SQLite file")
	fs.BoolVar(&opts.KeepEmpty, "keep-empty", false, "Keep sentences nobody annotated in the agreement stages")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s run [options] file...\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Merge annotation files and print the agreement and gold reports.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
		}
		return opts, nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, nil, errors.New("no annotation files provided")
	}

	return opts, fs.Args(), nil
}

func parseInspectArgs(args []string, ui UI) ([]string, error) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s inspect file...\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Enter interactive sentence lookup mode over the merged files.\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
		}
		return nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return nil, errors.New("no annotation files provided")
	}

	return fs.Args(), nil
}

func setupUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: %s command [command options] [arguments...]\n", os.Args[0])
		_, _ = fmt.Fprintf(output, "\nDescription:\n")
		_, _ = fmt.Fprintf(output, "  Inter-annotator agreement reports for annotation sheets\n")
		_, _ = fmt.Fprintf(output, "\nCommands:\n")
		_, _ = fmt.Fprintf(output, "  run       Merge annotation files and print the reports.\n")
		_, _ = fmt.Fprintf(output, "  inspect   Enter interactive sentence lookup mode.\n")
		_, _ = fmt.Fprintf(output, "  version   Show version information.\n")
		_, _ = fmt.Fprintf(output, "  help      Show this help.\n")
	}
}
