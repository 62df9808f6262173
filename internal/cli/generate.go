package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geocine/gensummary/internal/config"
	"github.com/geocine/gensummary/internal/parser"
	"github.com/geocine/gensummary/internal/preprocessor/runner"
	"github.com/geocine/gensummary/internal/utils"
)

// ConfigFile is the book configuration looked up in the book root
const ConfigFile = "book.toml"

// ErrStaleSummary is returned by check when the summary needs regenerating
var ErrStaleSummary = errors.New("summary is out of date")

// loadConfig reads root/book.toml, falling back to defaults when the book has none
func loadConfig(root string, logger *zap.Logger) (*config.Config, error) {
	path := filepath.Join(root, ConfigFile)
	cfg, err := config.LoadFromFile(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	logger.Debug("no book.toml, using defaults", zap.String("path", path))
	if err := config.LoadDotEnv(filepath.Join(root, ".env")); err != nil {
		return nil, err
	}
	cfg = config.NewDefaultConfig()
	cfg.UpdateFromEnv()
	return cfg, nil
}

func (a *app) newGenerateCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write SUMMARY.md from the source tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root, a.logger)
			if err != nil {
				return err
			}

			res, err := runner.NewRunner(cfg, root, a.logger).Generate()
			if err != nil {
				return err
			}

			if res.Written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d chapters)\n", res.Path, len(res.Outline.Entries()))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", res.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", ".", "Book root directory (holds book.toml)")
	return cmd
}

func (a *app) newCheckCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail when SUMMARY.md does not match the source tree",
		Long: `check renders the summary the way generate would and compares it with the
file on disk. Differences in the chapter list are printed as a diff. Missing
chapter files are still created when the options ask for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root, a.logger)
			if err != nil {
				return err
			}

			res, err := runner.NewRunner(cfg, root, a.logger).Render()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			current, err := utils.ReadToString(res.Path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					fmt.Fprintf(out, "%s does not exist\n", res.Path)
					return ErrStaleSummary
				}
				return err
			}

			if current == res.Document {
				fmt.Fprintf(out, "%s is up to date\n", res.Path)
				return nil
			}

			if err := writeSummaryDiff(out, res.Path, current, res.Document); err != nil {
				return err
			}
			return ErrStaleSummary
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", ".", "Book root directory (holds book.toml)")
	return cmd
}

// writeSummaryDiff prints the chapter entries that differ between the two
// documents. Documents listing the same entries differ only in formatting.
func writeSummaryDiff(w io.Writer, path, current, generated string) error {
	want, err := summaryLines(generated)
	if err != nil {
		return err
	}

	have, err := summaryLines(current)
	if err != nil {
		fmt.Fprintf(w, "%s cannot be parsed: %v\n", path, err)
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(have, "\n") + "\n"),
		B:        difflib.SplitLines(strings.Join(want, "\n") + "\n"),
		FromFile: path,
		ToFile:   "generated",
		Context:  1,
	})
	if err != nil {
		return fmt.Errorf("failed to diff summary: %w", err)
	}

	if diff == "" {
		fmt.Fprintf(w, "%s differs from the generated summary in formatting only\n", path)
		return nil
	}

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	header := color.New(color.FgCyan)
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			header.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			added.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			removed.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
	return nil
}

// summaryLines flattens a summary document into one line per entry
func summaryLines(content string) ([]string, error) {
	s, err := parser.ParseSummary(content)
	if err != nil {
		return nil, err
	}
	flat := s.Flatten()
	lines := make([]string, 0, len(flat))
	for _, f := range flat {
		lines = append(lines, f.String())
	}
	return lines, nil
}
