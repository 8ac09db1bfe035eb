// Package cmd implements the sketchwire commands.
//
// The root command dispatches to subcommands (validate, wire, svg, png, dxf,
// geojson, import), each registered from its own file.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"honnef.co/go/sketch"
	"honnef.co/go/sketch/sketchfile"
)

// Version information set at build time.
var Version = "0.1.0-dev"

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "sketchwire",
	Short: "sketchwire - planar sketches for solid modelling",
	Long: `sketchwire reads sketch files, validates their loops and converts them to
wires in space or to drawings.

Use "sketchwire <command> --help" for more information about a command.`,
	Usage: "sketchwire <command> [flags] FILE",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
}

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// Execute runs the command named by args[0].
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp()
		return nil
	}
	switch args[0] {
	case "-h", "--help", "help":
		if len(args) > 1 {
			if cmd, ok := commands[args[1]]; ok {
				printCommandHelp(cmd)
				return nil
			}
		}
		printHelp()
		return nil
	case "-v", "--version", "version":
		fmt.Fprintf(stdout, "sketchwire version %s\n", Version)
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printHelp()
		return fmt.Errorf("unknown command: %s", args[0])
	}
	for _, arg := range args[1:] {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(cmd)
			return nil
		}
	}
	return cmd.Run(args[1:])
}

func printHelp() {
	fmt.Fprintln(stdout, rootCmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(stdout, "  %-10s %s\n", name, commands[name].Short)
	}
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}

// parseFlags parses flags that may appear before, between or after the
// positional arguments, and returns the positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func checkTolerance(tol float64) error {
	if !(tol > 0) {
		return fmt.Errorf("tolerance must be positive, got %g", tol)
	}
	return nil
}

// oneFile returns the single positional argument.
func oneFile(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s needs exactly one file\n\nUsage: %s", cmd, commands[cmd].Usage)
	}
	return args[0], nil
}

func loadSketch(path string) (*sketchfile.Document, sketch.Sketch, sketch.Plane, error) {
	doc, err := sketchfile.Load(path)
	if err != nil {
		return nil, sketch.Sketch{}, sketch.Plane{}, err
	}
	s, p, err := doc.Build()
	if err != nil {
		return nil, sketch.Sketch{}, sketch.Plane{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, s, p, nil
}

// output opens path for writing, or returns stdout for an empty path or "-".
func output(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
