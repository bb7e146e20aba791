package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/lhaig/vyc/internal/compiler"
	"github.com/lhaig/vyc/internal/cst"
	"github.com/lhaig/vyc/internal/diagnostic"
)

const version = "0.1.0"

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "Project file (vyc.yaml or vyc.toml)",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	emitFlag = cli.StringFlag{
		Name:  "emit",
		Usage: "Output format: tree, yaml, dump or cst",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "Directory to write output to",
	}

	errorColor = color.New(color.FgRed, color.Bold)
)

func main() {
	app := cli.NewApp()
	app.Name = "vyc"
	app.Usage = "compiler front end for Vyper-style contracts"
	app.Version = version
	app.Flags = []cli.Flag{configFlag, verbosityFlag}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:      "compile",
			Usage:     "Lower and type one source file, then emit its AST",
			ArgsUsage: "<file.vy>",
			Flags:     []cli.Flag{emitFlag, outFlag},
			Action:    compileCommand,
		},
		{
			Name:      "check",
			Usage:     "Compile one source file and summarise its interface",
			ArgsUsage: "<file.vy>",
			Action:    checkCommand,
		},
		{
			Name:      "cst",
			Usage:     "Print the concrete parse tree of one source file",
			ArgsUsage: "<file.vy>",
			Action:    cstCommand,
		},
		{
			Name:   "build",
			Usage:  "Compile every source of the project",
			Flags:  []cli.Flag{emitFlag, outFlag},
			Action: buildCommand,
		},
		{
			Name:   "watch",
			Usage:  "Rebuild the project whenever a source changes",
			Flags:  []cli.Flag{emitFlag, outFlag},
			Action: watchCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs the root log handler
func setupLogging(ctx *cli.Context) error {
	usecolor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	output := colorable.NewColorableStderr()
	if !usecolor {
		output = colorable.NewNonColorable(os.Stderr)
	}
	lvl := log.Lvl(ctx.GlobalInt(verbosityFlag.Name))
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(output, log.TerminalFormat(usecolor))))
	return nil
}

func fileArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one source file, got %d arguments", ctx.NArg())
	}
	return ctx.Args().First(), nil
}

func emitFormat(ctx *cli.Context, fallback string) (compiler.Format, error) {
	name := ctx.String(emitFlag.Name)
	if name == "" {
		name = fallback
	}
	return compiler.ParseFormat(name)
}

// compileFile compiles path, printing a formatted diagnostic on failure
func compileFile(path string) (*compiler.Result, error) {
	res, err := compiler.CompileFile(path)
	if err != nil {
		diag := diagnostic.New()
		diag.Add(filepath.Base(path), err)
		printDiagnostics(diag)
		return nil, fmt.Errorf("compilation of %s failed", path)
	}
	return res, nil
}

func compileCommand(ctx *cli.Context) error {
	path, err := fileArg(ctx)
	if err != nil {
		return err
	}
	format, err := emitFormat(ctx, string(compiler.FormatTree))
	if err != nil {
		return err
	}
	res, err := compileFile(path)
	if err != nil {
		return err
	}

	if out := ctx.String(outFlag.Name); out != "" {
		written, err := compiler.EmitToDir(res, format, out, filepath.Base(path))
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", written)
		return nil
	}
	data, err := compiler.Emit(res, format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func checkCommand(ctx *cli.Context) error {
	path, err := fileArg(ctx)
	if err != nil {
		return err
	}
	res, err := compileFile(path)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, res.Module)
	return nil
}

func cstCommand(ctx *cli.Context) error {
	path, err := fileArg(ctx)
	if err != nil {
		return err
	}
	tree, err := compiler.ParseFile(path)
	if err != nil {
		diag := diagnostic.New()
		diag.Add(filepath.Base(path), err)
		printDiagnostics(diag)
		return fmt.Errorf("parsing %s failed", path)
	}
	fmt.Print(cst.Print(tree))
	return nil
}
