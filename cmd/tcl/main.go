// Command tcl is the host driver for the interpreter: it runs a script
// file, offers a line-at-a-time REPL, and exposes the COBS framing
// utility as a standalone sub-command.
//
// This replaces the teacher's flag-based cmd/glitter/glitter.go (weave/
// tangle dispatched through a bare string switch on os.Args-derived
// options) with a cobra command tree, logging through logrus instead of
// the teacher's "log" + os.Exit(1) pattern — see SPEC_FULL.md §2.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"monogrammedchalk.com/tcl/cobs"
	"monogrammedchalk.com/tcl/interp"
)

var (
	verbose bool
	log     = logrus.StandardLogger()
)

func newInterp() *interp.Interp {
	in := interp.New()
	interp.RegisterPuts(in, os.Stdout)
	tick := int64(0)
	interp.RegisterClock(in, func() int64 {
		tick++
		return tick
	})
	if verbose {
		in.SetLogger(log)
	}
	return in
}

func runScript(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	in := newInterp()
	if ok := in.Eval(data); !ok {
		line, col, kind, _ := in.ErrorPosition(data)
		return fmt.Errorf("%s:%d:%d: %s: %s", path, line, col, kind, in.Result().String())
	}
	fmt.Println(in.Result().String())
	return nil
}

func runREPL() error {
	in := newInterp()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("tcl> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if ok := in.Eval([]byte(line)); !ok {
			errLine, errCol, kind, _ := in.ErrorPosition([]byte(line))
			log.WithFields(logrus.Fields{"line": errLine, "col": errCol, "kind": kind.String()}).
				Error(in.Result().String())
			continue
		}
		fmt.Println(in.Result().String())
	}
}

func main() {
	root := &cobra.Command{
		Use:   "tcl",
		Short: "embeddable command-language interpreter",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "hand the CLI logger to the interpreter (evaluation writes no log output)")

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "evaluate a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args[0])
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "read-eval-print loop over stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL()
		},
	}

	var cobsDecode bool
	cobsCmd := &cobra.Command{
		Use:   "cobs",
		Short: "consistent-overhead-byte-stuffing framing utility",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			if cobsDecode {
				out, err := cobs.Decode(data)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(out)
				return err
			}
			_, err = os.Stdout.Write(cobs.Encode(data))
			return err
		},
	}
	cobsCmd.Flags().BoolVar(&cobsDecode, "decode", false, "decode instead of encode")

	root.AddCommand(runCmd, replCmd, cobsCmd)

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
