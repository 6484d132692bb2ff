// Command labelgen renders a label layout to a PDF file from the shell.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/label-designer/backend/internal/config"
	"github.com/label-designer/backend/internal/labelgen"
	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/models"
	"github.com/label-designer/backend/internal/storage"
)

// exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errAborted is returned when the user interrupts a prompt.
var errAborted = errors.New("aborted")

// Prompter asks for a single field value.
type Prompter interface {
	Ask(field string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Ask(field string) (string, error) {
	var out string
	prompt := &survey.Input{Message: field + ":"}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errAborted
		}
		return "", err
	}
	return out, nil
}

// kvFlag collects repeated key=value flags.
type kvFlag map[string]string

func (f kvFlag) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + f[k]
	}
	return strings.Join(parts, ",")
}

func (f kvFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	f[strings.TrimSpace(k)] = v
	return nil
}

type options struct {
	layoutPath   string
	templatePath string
	dataFile     string
	required     string
	configPath   string
	out          string
	interactive  bool
	verbose      bool
	data         kvFlag
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, surveyPrompter{}))
}

func run(args []string, stdout, stderr io.Writer, prompter Prompter) int {
	opts := options{data: kvFlag{}}
	fs := flag.NewFlagSet("labelgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.layoutPath, "layout", "", "layout JSON file (empty renders the built-in label)")
	fs.StringVar(&opts.templatePath, "template", "", "YAML template definition; supplies layout and required fields")
	fs.StringVar(&opts.dataFile, "data-file", "", "JSON object of field values")
	fs.Var(opts.data, "data", "field value as key=value (repeatable, overrides -data-file)")
	fs.StringVar(&opts.required, "required", "", "comma-separated required fields")
	fs.StringVar(&opts.configPath, "config", "", "YAML config for rendering options")
	fs.StringVar(&opts.out, "out", "", "output PDF path (default label-<timestamp>.pdf)")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for missing required fields")
	fs.BoolVar(&opts.verbose, "v", false, "log pipeline fallbacks")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	layoutJSON, required, err := loadLayout(opts)
	if err != nil {
		fmt.Fprintf(stderr, "labelgen: %v\n", err)
		return exitUsage
	}

	data, err := loadData(opts.dataFile, opts.data)
	if err != nil {
		fmt.Fprintf(stderr, "labelgen: %v\n", err)
		return exitUsage
	}

	if err := fillRequired(required, data, opts.interactive, prompter); err != nil {
		fmt.Fprintf(stderr, "labelgen: %v\n", err)
		return exitUsage
	}

	rendering := config.DefaultConfig().Rendering
	if opts.configPath != "" {
		cfg, err := config.LoadConfig(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "labelgen: %v\n", err)
			return exitUsage
		}
		rendering = cfg.Rendering
	}

	level := "off"
	if opts.verbose {
		level = "debug"
	}
	gen := labelgen.NewFromConfig(rendering, logging.New("labelgen", level))
	res := gen.Generate(models.LabelRequest{Data: data}, layoutJSON)

	out := opts.out
	if out == "" {
		out = res.Filename
	}
	if err := os.WriteFile(out, res.PDF, 0644); err != nil {
		fmt.Fprintf(stderr, "labelgen: write %s: %v\n", out, err)
		return exitFailure
	}

	fmt.Fprintf(stdout, "%s label written to %s (%d bytes)\n", res.Outcome, out, len(res.PDF))
	if res.Err != nil {
		fmt.Fprintf(stderr, "labelgen: fell back after: %v\n", res.Err)
	}
	return exitOK
}

// loadLayout returns the layout JSON and the required fields. A template
// file supplies both; -layout replaces its layout and -required adds to
// its fields.
func loadLayout(opts options) (string, []string, error) {
	var layoutJSON string
	var required []string

	if opts.templatePath != "" {
		t, err := storage.LoadTemplateFile(opts.templatePath)
		if err != nil {
			return "", nil, err
		}
		layoutJSON = t.LayoutJSON
		required = append(required, t.RequiredFields...)
	}

	if opts.layoutPath != "" {
		b, err := os.ReadFile(opts.layoutPath)
		if err != nil {
			return "", nil, fmt.Errorf("read layout: %w", err)
		}
		layoutJSON = string(b)
	}

	for _, f := range strings.Split(opts.required, ",") {
		if f = strings.TrimSpace(f); f != "" {
			required = append(required, f)
		}
	}
	return layoutJSON, required, nil
}

// loadData merges the data file with flag values; flags win.
func loadData(path string, flags kvFlag) (map[string]string, error) {
	data := make(map[string]string)
	if path != "" {
		b, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse data file: %w", err)
		}
		// Numbers keep the digits they were written with.
		for k, v := range raw {
			data[k] = models.NewValue(v).StringOr("")
		}
	}
	for k, v := range flags {
		data[k] = v
	}
	return data, nil
}

// fillRequired prompts for each required field absent from data, or fails
// with the missing list when not interactive.
func fillRequired(required []string, data map[string]string, interactive bool, prompter Prompter) error {
	err := labelgen.CheckRequired(required, data)
	var missing *labelgen.MissingFieldsError
	if !errors.As(err, &missing) {
		return err
	}
	if !interactive {
		return err
	}
	for _, field := range missing.Fields {
		v, err := prompter.Ask(field)
		if err != nil {
			return err
		}
		data[field] = v
	}
	return nil
}
