// Package tools resolves and runs the external conversion tools convctl
// shells out to (LibreOffice, pandoc, poppler, mupdf, ffmpeg). Resolution
// order is a CONVCTL_*_PATH environment override first, then the candidate
// command names on PATH.
package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Tool describes one external conversion tool.
type Tool struct {
	Name        string   // stable identifier, also used as the converter name
	EnvVar      string   // environment override for the executable path
	Candidates  []string // command names tried with exec.LookPath, in order
	VersionArgs []string // arguments that print the version on the first line
	InstallHint string   // how to obtain the tool, shown by doctor
}

// Status reports the result of probing one tool.
type Status struct {
	Name      string
	Available bool
	Path      string
	Version   string
	Hint      string
	Err       string
}

// The tools the builtin converter set knows how to drive.
var (
	Soffice = Tool{
		Name:        "soffice",
		EnvVar:      "CONVCTL_SOFFICE_PATH",
		Candidates:  []string{"soffice", "libreoffice"},
		VersionArgs: []string{"--version"},
		InstallHint: "apt install libreoffice / brew install --cask libreoffice",
	}
	Pandoc = Tool{
		Name:        "pandoc",
		EnvVar:      "CONVCTL_PANDOC_PATH",
		Candidates:  []string{"pandoc"},
		VersionArgs: []string{"--version"},
		InstallHint: "apt install pandoc / brew install pandoc",
	}
	Pdftoppm = Tool{
		Name:        "pdftoppm",
		EnvVar:      "CONVCTL_PDFTOPPM_PATH",
		Candidates:  []string{"pdftoppm"},
		VersionArgs: []string{"-v"},
		InstallHint: "apt install poppler-utils / brew install poppler",
	}
	Mutool = Tool{
		Name:        "mutool",
		EnvVar:      "CONVCTL_MUTOOL_PATH",
		Candidates:  []string{"mutool"},
		VersionArgs: []string{"-v"},
		InstallHint: "apt install mupdf-tools / brew install mupdf-tools",
	}
	FFmpeg = Tool{
		Name:        "ffmpeg",
		EnvVar:      "CONVCTL_FFMPEG_PATH",
		Candidates:  []string{"ffmpeg"},
		VersionArgs: []string{"-version"},
		InstallHint: "apt install ffmpeg / brew install ffmpeg",
	}
)

// All lists the known tools in display order.
func All() []Tool {
	return []Tool{Soffice, Pandoc, Pdftoppm, Mutool, FFmpeg}
}

// Path resolves the tool executable. The env override wins; an override
// that does not resolve is an error rather than a silent fallback, since
// the user asked for that specific binary.
func (t Tool) Path() (string, error) {
	if p := os.Getenv(t.EnvVar); p != "" {
		if _, err := exec.LookPath(p); err != nil {
			return "", fmt.Errorf("%s (%s): %w", t.Name, t.EnvVar, err)
		}
		return p, nil
	}
	for _, c := range t.Candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s not found on PATH (set %s to override)", t.Name, t.EnvVar)
}

// Available reports whether the tool executable can be resolved.
func (t Tool) Available() bool {
	_, err := t.Path()
	return err == nil
}

// Version probes the tool's version string, taken from the first non-empty
// output line. Some tools print it to stderr or exit non-zero after
// printing, so the probe reads combined output and tolerates exit errors.
func (t Tool) Version(ctx context.Context) (string, error) {
	path, err := t.Path()
	if err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, path, t.VersionArgs...)
	output, err := cmd.CombinedOutput()
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("%s: no version output", t.Name)
}

// Inspect probes availability and version for diagnostics.
func (t Tool) Inspect(ctx context.Context) Status {
	st := Status{Name: t.Name, Hint: t.InstallHint}
	path, err := t.Path()
	if err != nil {
		st.Err = err.Error()
		return st
	}
	st.Available = true
	st.Path = path
	if v, err := t.Version(ctx); err == nil {
		st.Version = v
	}
	return st
}

// Run executes the resolved tool with args. Conversion tools are chatty on
// stderr even when they succeed, so output is captured and only folded
// into the error on failure.
func (t Tool) Run(ctx context.Context, args ...string) error {
	path, err := t.Path()
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, path, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s failed: %w, output: %s",
			t.Name, strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
