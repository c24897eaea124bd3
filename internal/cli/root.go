package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/doctext/doctext/docstring"
	"github.com/doctext/doctext/internal/config"
	"github.com/doctext/doctext/internal/extract"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	version = "dev"
	// Commit is set at build time
	commit = "none"
	// Date is set at build time
	date = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = version
}

// Flags
var (
	writeInPlace bool
	runExtract   bool
	configFile   string

	indentEmptyLines bool
	minimizeIndents  bool
	listWithIndent   bool
	listNoIndent     bool
	tabSize          int
	inBullets        string
	outBullets       string
)

var rootCmd = &cobra.Command{
	Use:   "doctext [file...]",
	Short: "Normalize docstrings and plain text",
	Long: `doctext cleans up docstring-style text: paragraphs are rejoined, space
indentation becomes canonical tabs, and bullet and numbered lists keep their
structure. It reads the given files, or stdin when none are given, and writes
the result to stdout.

Defaults can be set in ~/.config/doctext/config.yaml; flags win over the
config file.`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runConvert,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&writeInPlace, "write", "w", false, "rewrite files in place instead of printing to stdout")
	f.BoolVar(&runExtract, "extract", false, "extract text from known document formats (md, html, pdf, docx, csv) before converting")
	f.StringVar(&configFile, "config", "", "config file (default ~/.config/doctext/config.yaml)")

	f.BoolVar(&indentEmptyLines, "indent-empty-lines", false, "re-create indentation on preserved empty lines")
	f.BoolVar(&minimizeIndents, "minimize-indents", true, "collapse each indentation step to one tab")
	f.BoolVar(&listWithIndent, "list-with-indent", true, "join indented continuations onto list items")
	f.BoolVar(&listNoIndent, "list-no-indent", true, "join same-indent continuations onto list items")
	f.IntVar(&tabSize, "tab-size", docstring.DefaultTabSize, "spaces per tab")
	f.StringVar(&inBullets, "in-bullets", "", "bullet characters to recognize (default built-in set)")
	f.StringVar(&outBullets, "out-bullets", "", "per-level output bullet glyphs (default keeps originals)")
}

// buildOptions layers defaults, the config file, and changed flags.
func buildOptions(cmd *cobra.Command) (docstring.Options, error) {
	opts := docstring.DefaultOptions()

	var fileCfg *config.FileConfig
	var err error
	if configFile != "" {
		fileCfg, err = config.LoadFileConfig(configFile)
	} else {
		fileCfg, err = config.ReadFileConfig()
	}
	if err != nil {
		return opts, err
	}
	opts = fileCfg.Apply(opts)

	flags := cmd.Flags()
	if flags.Changed("indent-empty-lines") {
		opts.IndentEmptyLines = indentEmptyLines
	}
	if flags.Changed("minimize-indents") {
		opts.MinimizeIndents = minimizeIndents
	}
	if flags.Changed("list-with-indent") {
		opts.ListWithIndent = listWithIndent
	}
	if flags.Changed("list-no-indent") {
		opts.ListNoIndent = listNoIndent
	}
	if flags.Changed("tab-size") {
		opts.TabSize = tabSize
	}
	if flags.Changed("in-bullets") {
		opts.InBullets = inBullets
	}
	if flags.Changed("out-bullets") {
		opts.OutBullets = outBullets
	}
	return opts, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	conv, err := docstring.New(opts)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if writeInPlace {
			return fmt.Errorf("--write requires file arguments")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), conv.Convert(string(data)))
		return nil
	}

	for _, path := range args {
		text, err := readInput(path)
		if err != nil {
			return err
		}
		out := conv.Convert(text)
		if writeInPlace {
			if err := writeBack(path, out); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

// readInput reads one input file, running the format extractor first when
// requested and the extension is known.
func readInput(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	if runExtract && extract.IsSupportedExtension(path) {
		ex, err := extract.ForFile(path)
		if err != nil {
			return "", fmt.Errorf("extracting %s: %w", path, err)
		}
		text, err := ex.Extract(f, path)
		if err != nil {
			return "", fmt.Errorf("extracting %s: %w", path, err)
		}
		return text, nil
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return buf.String(), nil
}

func writeBack(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text+"\n"), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
