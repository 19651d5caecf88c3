// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/cc89/compiler/pkg/compiler"
	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/optimizer"
	"github.com/cc89/compiler/pkg/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// registerCompileFlags wires the default action's flags onto cmd.
// Flags are registered alongside the command that uses them and read
// back with the GetFlag/GetString family.
func registerCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "a.out.s", "output path for assembly")
	cmd.Flags().Bool("O0", false, "disable optimization")
	cmd.Flags().Bool("O1", false, "enable constant folding, algebraic simplification, and dead-code elimination (default)")
	cmd.Flags().Bool("O2", false, "enable O1 plus common subexpression elimination and peephole optimization")
	cmd.Flags().Bool("dump-tokens", false, "dump the token stream as JSON to stdout and exit")
	cmd.Flags().Bool("dump-ast", false, "dump the AST as JSON to stdout and exit")
	cmd.Flags().Bool("dump-ir", false, "dump the IR as JSON to stdout and exit")
	cmd.Flags().StringArrayP("W", "W", []string{}, "enable a named warning category")
	cmd.Flags().StringArray("Wno", []string{}, "disable a named warning category (pass as --Wno <name>)")
	cmd.Flags().Bool("no-color", false, "disable ANSI color in diagnostics")
	cmd.Flags().Bool("verbose", false, "increase logging verbosity")
}

func optLevel(cmd *cobra.Command) optimizer.Level {
	switch {
	case GetFlag(cmd, "O0"):
		return optimizer.O0
	case GetFlag(cmd, "O2"):
		return optimizer.O2
	default:
		return optimizer.O1
	}
}

// warningConfig resolves the repeatable -W <name> and --Wno <name> flags
// into the category->enabled map compiler.Config expects.
func warningConfig(cmd *cobra.Command) map[diag.Category]bool {
	cfg := map[diag.Category]bool{
		diag.CategoryUnused:      true,
		diag.CategoryConversion:  true,
		diag.CategorySignCompare: true,
		diag.CategoryShadow:      true,
	}
	for _, name := range GetStringArray(cmd, "W") {
		cfg[diag.Category(name)] = true
	}
	for _, name := range GetStringArray(cmd, "Wno") {
		cfg[diag.Category(name)] = false
	}
	return cfg
}

func runCompile(cmd *cobra.Command, args []string) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	if len(args) != 1 {
		fmt.Println("expected exactly one input file")
		os.Exit(compiler.ExitUsageError)
	}
	filename := args[0]
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(compiler.ExitIOError)
	}

	cfg := compiler.Config{OptLevel: optLevel(cmd), Warnings: warningConfig(cmd)}
	result := compiler.Compile(filename, src, cfg)

	if GetFlag(cmd, "dump-tokens") {
		fmt.Println(dumpTokens(result.Tokens))
		os.Exit(compiler.ExitSuccess)
	}
	if GetFlag(cmd, "dump-ast") {
		fmt.Println(dumpAST(result.AST))
		os.Exit(compiler.ExitSuccess)
	}
	if GetFlag(cmd, "dump-ir") {
		fmt.Println(dumpIR(result.Module))
		os.Exit(compiler.ExitSuccess)
	}

	noColor := GetFlag(cmd, "no-color")
	color := !noColor && term.IsTerminal(int(os.Stderr.Fd()))
	file := source.NewFile(filename, src)
	rendered := diag.Render(result.Diags.All(), diag.RenderOptions{
		Color: color,
		File: func(name string) *source.File {
			// #line can rename the file mid-stream; only the file we
			// actually read can supply excerpt lines.
			if name == filename {
				return file
			}
			return nil
		},
	})
	if rendered != "" {
		fmt.Fprint(os.Stderr, rendered)
	}

	if result.ExitCode != compiler.ExitSuccess {
		os.Exit(result.ExitCode)
	}

	output := GetString(cmd, "output")
	if err := os.WriteFile(output, []byte(result.Assembly), 0644); err != nil {
		fmt.Println(err)
		os.Exit(compiler.ExitIOError)
	}
	os.Exit(compiler.ExitSuccess)
}
