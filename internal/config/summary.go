package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geocine/gensummary/internal/outline"
)

// PreprocessorName is the table name of this tool in book.toml:
//
//	[preprocessor.generate-summary]
//	get_chapter_name_from_file = true
//	chapter_file_name = "README"
//	create_missing_chapter_files = false
//	ignore_missing_chapter_files = false
const PreprocessorName = "generate-summary"

// SummaryConfig holds everything needed to generate SUMMARY.md
type SummaryConfig struct {
	Options outline.Options
	Header  string // Handlebars template written above the chapter list
}

// DefaultSummaryConfig returns the documented defaults
func DefaultSummaryConfig() *SummaryConfig {
	return &SummaryConfig{
		Options: outline.DefaultOptions(),
		Header:  outline.DefaultHeader,
	}
}

// SummaryConfig projects the generate-summary table onto a SummaryConfig.
// [build] create-missing seeds create_missing_chapter_files.
func (c *Config) SummaryConfig() (*SummaryConfig, error) {
	table := c.PreprocessorTable(PreprocessorName)
	if _, ok := lookup(table, "create_missing_chapter_files"); !ok && c.Build.CreateMissing {
		merged := map[string]interface{}{"create_missing_chapter_files": true}
		for k, v := range table {
			merged[k] = v
		}
		table = merged
	}
	return ParseSummaryConfig(table)
}

// ParseSummaryConfig decodes a generate-summary table, as found in book.toml
// or in a preprocessor context. Keys may use underscores or hyphens. Values
// set from the environment arrive as strings and are parsed.
func ParseSummaryConfig(table map[string]interface{}) (*SummaryConfig, error) {
	sc := DefaultSummaryConfig()
	opts := &sc.Options

	var err error
	if opts.ChapterNameFromFile, err = boolOption(table, "get_chapter_name_from_file", opts.ChapterNameFromFile); err != nil {
		return nil, err
	}
	if opts.CreateMissing, err = boolOption(table, "create_missing_chapter_files", opts.CreateMissing); err != nil {
		return nil, err
	}
	if opts.IgnoreMissing, err = boolOption(table, "ignore_missing_chapter_files", opts.IgnoreMissing); err != nil {
		return nil, err
	}
	if opts.FrontmatterTitle, err = boolOption(table, "frontmatter_title", opts.FrontmatterTitle); err != nil {
		return nil, err
	}
	if opts.ChapterFileName, err = stringOption(table, "chapter_file_name", opts.ChapterFileName); err != nil {
		return nil, err
	}
	if opts.SummaryFile, err = stringOption(table, "summary_file", opts.SummaryFile); err != nil {
		return nil, err
	}
	if opts.Extensions, err = listOption(table, "extensions", opts.Extensions); err != nil {
		return nil, err
	}
	if sc.Header, err = stringOption(table, "header", sc.Header); err != nil {
		return nil, err
	}

	if opts.ChapterFileName == "" || strings.ContainsAny(opts.ChapterFileName, `/\`) {
		return nil, fmt.Errorf("invalid value for 'chapter_file_name': %q is not a plain file name", opts.ChapterFileName)
	}
	if opts.SummaryFile == "" || strings.ContainsAny(opts.SummaryFile, `/\`) {
		return nil, fmt.Errorf("invalid value for 'summary_file': %q is not a plain file name", opts.SummaryFile)
	}
	if strings.EqualFold(opts.ChapterFileName+".md", opts.SummaryFile) {
		return nil, fmt.Errorf("invalid value for 'chapter_file_name': %q would make %s a chapter of itself", opts.ChapterFileName, opts.SummaryFile)
	}

	return sc, nil
}

// lookup finds key in its underscore or hyphen spelling
func lookup(table map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := table[key]; ok {
		return v, true
	}
	v, ok := table[strings.ReplaceAll(key, "_", "-")]
	return v, ok
}

func boolOption(table map[string]interface{}, key string, def bool) (bool, error) {
	v, ok := lookup(table, key)
	if !ok {
		return def, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("invalid value for '%s': expected a boolean, got %q", key, b)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("invalid value for '%s': expected a boolean, got %T", key, v)
	}
}

func stringOption(table map[string]interface{}, key, def string) (string, error) {
	v, ok := lookup(table, key)
	if !ok {
		return def, nil
	}
	s, isStr := v.(string)
	if !isStr {
		return "", fmt.Errorf("invalid value for '%s': expected a string, got %T", key, v)
	}
	return s, nil
}

// listOption accepts an array of strings or a comma-separated string
func listOption(table map[string]interface{}, key string, def []string) ([]string, error) {
	v, ok := lookup(table, key)
	if !ok {
		return def, nil
	}
	switch list := v.(type) {
	case string:
		var out []string
		for _, item := range strings.Split(list, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	case []string:
		return list, nil
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, isStr := item.(string)
			if !isStr {
				return nil, fmt.Errorf("invalid value for '%s': expected strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid value for '%s': expected a list of strings, got %T", key, v)
	}
}
