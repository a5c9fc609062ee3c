// Command ildis disassembles CIL method bodies.
//
//	ildis dis testdata/add.yaml       decode a fixture and print its listing
//	ildis raw "00 17 2a"              decode raw code bytes without metadata
//	ildis eh testdata/hello.yaml      print the exception clause tree
//	ildis browse testdata/hello.yaml  interactive listing
//	ildis opcodes ldc.i4.s 0xFE01     opcode table lookup
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhinobytesoftware/ilreader/il"
	"github.com/rhinobytesoftware/ilreader/metadata"
)

type options struct {
	verbose      bool
	color        string
	descriptions bool
	instance     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ildis",
		Short:         "CIL method body disassembler",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.color {
			case colorAuto, colorAlways, colorNever:
			default:
				return fmt.Errorf("invalid --color %q, want auto, always or never", opts.color)
			}
			if opts.verbose {
				log, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("create logger: %w", err)
				}
				il.SetLogger(log)
			}
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log decoder diagnostics to stderr")
	flags.StringVar(&opts.color, "color", colorAuto, "colorize output: auto, always or never")
	flags.BoolVarP(&opts.descriptions, "descriptions", "d", false, "append opcode descriptions")

	root.AddCommand(
		newDisCmd(opts),
		newRawCmd(opts),
		newEHCmd(opts),
		newBrowseCmd(),
		newOpcodesCmd(),
	)
	return root
}

func newDisCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dis <fixture.yaml>",
		Short: "Decode a fixture and print its listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := metadata.LoadFixtureFile(args[0])
			if err != nil {
				return err
			}
			body, err := f.Decode()
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			if f.Name != "" {
				fmt.Fprintf(out, "// %s\n", f.Name)
			}
			return printListing(out, body, opts)
		},
	}
}

func newRawCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raw <hex>...",
		Short: "Decode raw code bytes without metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code []byte
			for _, arg := range args {
				b, err := metadata.ParseHex(arg)
				if err != nil {
					return err
				}
				code = append(code, b...)
			}
			var decodeOpts []il.Option
			if opts.instance {
				decodeOpts = append(decodeOpts, il.WithInstanceMethod())
			}
			body, err := il.Decode(code, nil, decodeOpts...)
			if err != nil {
				return err
			}
			return printListing(cmd.OutOrStdout(), body, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.instance, "instance", false, "treat argument slot 0 as this")
	return cmd
}

func newEHCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eh <fixture.yaml>",
		Short: "Print the exception clause tree of a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := metadata.LoadFixtureFile(args[0])
			if err != nil {
				return err
			}
			body, err := f.Decode()
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			name := f.Name
			if name == "" {
				name = args[0]
			}
			fmt.Fprint(cmd.OutOrStdout(), handlerTree(name, body, formatterFor(cmd.OutOrStdout(), opts)))
			return nil
		},
	}
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <fixture.yaml>",
		Short: "Browse a fixture listing interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(args[0])
		},
	}
}

func printListing(w io.Writer, body *il.Body, opts *options) error {
	listing := il.DescribeAll(body, formatterFor(w, opts))
	if listing == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, listing)
	return err
}
