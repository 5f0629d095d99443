package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vesper-lang/vesper/internal/compiler/annotate"
	"github.com/vesper-lang/vesper/internal/compiler/check"
	"github.com/vesper-lang/vesper/internal/compiler/diag"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Explain a diagnostic code",
	Long: `Show the documentation for a diagnostic code reported by the compiler,
for example ANN120. Without an argument, list all known codes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		explanations := allExplanations()

		if len(args) == 0 {
			listCodes(explanations)
			return nil
		}

		code := diag.Code(strings.ToUpper(args[0]))
		text, ok := explanations[code]
		if !ok {
			return fmt.Errorf("unknown diagnostic code %q", args[0])
		}

		codeColor := color.New(color.FgCyan, color.Bold)
		fmt.Printf("%s\n\n%s\n", codeColor.Sprint(string(code)), text)
		return nil
	},
}

func allExplanations() map[diag.Code]string {
	out := make(map[diag.Code]string, len(annotate.Explanations)+len(check.Explanations))
	for code, text := range annotate.Explanations {
		out[code] = text
	}
	for code, text := range check.Explanations {
		out[code] = text
	}
	return out
}

func listCodes(explanations map[diag.Code]string) {
	codes := make([]string, 0, len(explanations))
	for code := range explanations {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)

	codeColor := color.New(color.FgCyan)
	for _, code := range codes {
		summary := explanations[diag.Code(code)]
		if i := strings.IndexByte(summary, '.'); i > 0 {
			summary = summary[:i+1]
		}
		fmt.Printf("%s  %s\n", codeColor.Sprint(code), summary)
	}
}
