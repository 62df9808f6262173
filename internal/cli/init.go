package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geocine/gensummary/internal/config"
	"github.com/geocine/gensummary/internal/preprocessor/runner"
	"github.com/geocine/gensummary/internal/utils"
)

// InitOptions captures options for initializing a new book
type InitOptions struct {
	Name           string
	CreateMissing  bool   // create missing chapter files when generating
	TitlesFromFile bool   // read chapter titles from their first heading
	SrcDir         string // default: src
	BuildDir       string // default: book
	Title          string // optional book title; defaults to Name
}

// DefaultInitOptions returns the options used when nothing is asked
func DefaultInitOptions() InitOptions {
	return InitOptions{
		Name:           "my-book",
		TitlesFromFile: true,
		SrcDir:         "src",
		BuildDir:       "book",
	}
}

// scaffold is the source tree of a new book, slash-separated below SrcDir
var scaffold = []struct {
	path    string
	content string
}{
	{"README.md", "# Introduction\n\nWelcome to your new book!\n"},
	{"guide/README.md", "# Guide\n\nEvery directory is a chapter; this file is its page.\n"},
	{"guide/getting-started.md", "# Getting Started\n\nStart writing here.\n"},
	{"guide/writing-chapters.md", "# Writing Chapters\n\nAdd files and directories, then run `gensummary generate`.\n"},
	{"conclusion.md", "# Conclusion\n\nThanks for reading.\n"},
}

// Init scaffolds a new book at opts.Name and generates its SUMMARY.md
func Init(opts InitOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultInitOptions()
	if opts.Name == "" {
		opts.Name = defaults.Name
	}
	if opts.SrcDir == "" {
		opts.SrcDir = defaults.SrcDir
	}
	if opts.BuildDir == "" {
		opts.BuildDir = defaults.BuildDir
	}
	if opts.Title == "" {
		opts.Title = filepath.Base(opts.Name)
	}

	root := opts.Name
	configPath := filepath.Join(root, ConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("'%s' already exists", configPath)
	}

	srcPath := filepath.Join(root, opts.SrcDir)
	if utils.DirExists(srcPath) {
		logger.Info("Using existing source directory", zap.String("src", srcPath))
	} else if err := utils.CreateDirAll(srcPath); err != nil {
		return err
	}

	// Write book.toml
	bookToml := fmt.Sprintf(`[book]
title = %q
src = %q

[build]
build-dir = %q

[preprocessor.%s]
get_chapter_name_from_file = %t
chapter_file_name = "README"
create_missing_chapter_files = %t
ignore_missing_chapter_files = false
`, opts.Title, opts.SrcDir, opts.BuildDir, config.PreprocessorName, opts.TitlesFromFile, opts.CreateMissing)
	if err := utils.WriteFile(configPath, []byte(bookToml)); err != nil {
		return err
	}

	// Seed chapters without clobbering an existing source tree
	for _, f := range scaffold {
		path := filepath.Join(srcPath, filepath.FromSlash(f.path))
		if utils.FileExists(path) {
			continue
		}
		if err := utils.WriteFile(path, []byte(f.content)); err != nil {
			return err
		}
	}

	// Create a .gitignore for the build dir
	gitignore := []byte(fmt.Sprintf("%s\n", opts.BuildDir))
	if err := utils.WriteFile(filepath.Join(root, ".gitignore"), gitignore); err != nil {
		logger.Warn("Failed to write .gitignore", zap.Error(err))
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return err
	}
	if _, err := runner.NewRunner(cfg, root, logger).Generate(); err != nil {
		return fmt.Errorf("failed to generate summary: %w", err)
	}

	return nil
}

func (a *app) newInitCommand() *cobra.Command {
	opts := DefaultInitOptions()
	var yes bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a new book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}

			if !yes {
				FillInitOptionsInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), &opts)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initializing new book: %s\n", opts.Name)
			if err := Init(opts, a.logger); err != nil {
				return fmt.Errorf("failed to initialize book: %w", err)
			}

			fmt.Fprintf(out, "\nSuccessfully created book in '%s'\n", opts.Name)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintf(out, "  cd %s\n", opts.Name)
			fmt.Fprintln(out, "  gensummary generate   # rewrite SUMMARY.md after adding chapters")
			fmt.Fprintln(out, "  gensummary check      # fail when SUMMARY.md is stale")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Book title (defaults to the directory name)")
	cmd.Flags().StringVar(&opts.SrcDir, "src", opts.SrcDir, "Source directory")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", opts.BuildDir, "Build output directory")
	cmd.Flags().BoolVar(&opts.CreateMissing, "create-missing", false, "Create missing chapter files when generating")
	cmd.Flags().BoolVar(&opts.TitlesFromFile, "titles-from-file", opts.TitlesFromFile, "Read chapter titles from their first heading")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip interactive prompts and use provided/default values")
	return cmd
}
