package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FillInitOptionsInteractive prompts the user to confirm or override defaults.
// An empty answer, or the end of input, keeps the provided default.
func FillInitOptionsInteractive(in io.Reader, out io.Writer, opts *InitOptions) {
	reader := bufio.NewReader(in)
	ask := func(prompt, def string) string {
		fmt.Fprintf(out, "%s [%s]: ", prompt, def)
		if s, _ := reader.ReadString('\n'); strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		return def
	}
	confirm := func(prompt string, def bool) bool {
		hint, answer := "y/N", "n"
		if def {
			hint, answer = "Y/n", "y"
		}
		v := strings.ToLower(ask(fmt.Sprintf("%s (%s)", prompt, hint), answer))
		return v == "y" || v == "yes"
	}

	opts.Name = ask("Directory name", opts.Name)

	// Title
	defTitle := opts.Title
	if defTitle == "" {
		defTitle = opts.Name
	}
	opts.Title = ask("Book title", defTitle)

	opts.SrcDir = ask("Source directory", opts.SrcDir)
	opts.BuildDir = ask("Build directory", opts.BuildDir)

	opts.TitlesFromFile = confirm("Read chapter titles from the first heading?", opts.TitlesFromFile)
	opts.CreateMissing = confirm("Create missing chapter files?", opts.CreateMissing)
}
