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
package compiler

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cc89/compiler/pkg/optimizer"
)

// runGolden compiles src, writes the assembly to a temp file, and -- when
// gcc is on PATH -- assembles, links, and executes it, returning the
// process exit code. When gcc is unavailable the test is skipped rather
// than failed, since runtime behaviour cannot be observed without an
// assembler and linker.
func runGolden(t *testing.T, src string, level optimizer.Level) (exitCode int, stdout string) {
	t.Helper()
	if _, err := exec.LookPath("gcc"); err != nil {
		t.Skip("gcc not available, skipping assemble+link+execute golden test")
	}

	res := Compile("golden.c", []byte(src), Config{OptLevel: level, Warnings: nil})
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected compilation errors: %v", res.Diags.All())
	}

	dir := t.TempDir()
	asmPath := filepath.Join(dir, "golden.s")
	binPath := filepath.Join(dir, "golden")
	if err := os.WriteFile(asmPath, []byte(res.Assembly), 0644); err != nil {
		t.Fatalf("write asm: %v", err)
	}
	if out, err := exec.Command("gcc", "-o", binPath, asmPath).CombinedOutput(); err != nil {
		t.Fatalf("assemble+link failed: %v\n%s\n--- assembly ---\n%s", err, out, res.Assembly)
	}

	cmd := exec.Command(binPath)
	var sb strings.Builder
	cmd.Stdout = &sb
	runErr := cmd.Run()
	code := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if runErr != nil {
		t.Fatalf("run: %v", runErr)
	}
	return code, sb.String()
}

func TestGolden_SumOfLocals(t *testing.T) {
	src := `int main(){int x=10;int y=20;return x+y;}`
	code, _ := runGolden(t, src, optimizer.O1)
	if code != 30 {
		t.Errorf("exit code = %d, want 30", code)
	}
}

func TestGolden_CallsAndMul(t *testing.T) {
	src := `int add(int a,int b){return a+b;} int mul(int x,int y){return x*y;} int main(){int s=add(10,5);int p=mul(6,7);return p;}`
	code, _ := runGolden(t, src, optimizer.O1)
	if code != 42 {
		t.Errorf("exit code = %d, want 42", code)
	}
}

func TestGolden_RecursiveFactorial(t *testing.T) {
	src := `int fact(int n){if(n<=1)return 1;return n*fact(n-1);} int main(){return fact(5)%100;}`
	code, _ := runGolden(t, src, optimizer.O1)
	if code != 20 {
		t.Errorf("exit code = %d, want 20", code)
	}
}

func TestGolden_PrintfAndExitZero(t *testing.T) {
	src := `extern int printf(char*,...); int main(){printf("Hello, World!\n");printf("The answer is: %d\n",42);return 0;}`
	code, out := runGolden(t, src, optimizer.O1)
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	want := "Hello, World!\nThe answer is: 42\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestGolden_O2ConstantFoldAndShift(t *testing.T) {
	src := `int u(){int x=2+3;int y=x*8;int z=y+0;return z;} int d(){int r=42;return r;} int main(){return u()+d();}`
	res := Compile("golden.c", []byte(src), Config{OptLevel: optimizer.O2})
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected compilation errors: %v", res.Diags.All())
	}
	uBody := functionBody(res.Assembly, "u")
	if strings.Contains(uBody, "addq $0,") {
		t.Errorf("function u still contains a dead addq $0:\n%s", uBody)
	}
	if strings.Contains(uBody, "imulq $8,") {
		t.Errorf("function u still contains imulq $8 instead of a shift:\n%s", uBody)
	}
	if !strings.Contains(uBody, "shlq $3,") {
		t.Errorf("function u is missing the expected shlq $3:\n%s", uBody)
	}

	code, _ := runGolden(t, src, optimizer.O2)
	if code != 82 {
		t.Errorf("exit code = %d, want 82", code)
	}
}

func TestGolden_UndeclaredIdentifierNoAssembly(t *testing.T) {
	src := `int main(){return x;}`
	res := Compile("golden.c", []byte(src), Config{OptLevel: optimizer.O1})
	if res.Diags.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want exactly 1 (diags: %v)", res.Diags.ErrorCount(), res.Diags.All())
	}
	if res.ExitCode != ExitCompilationError {
		t.Errorf("exit code = %d, want %d", res.ExitCode, ExitCompilationError)
	}
	if res.Assembly != "" {
		t.Errorf("assembly was written despite a semantic error: %q", res.Assembly)
	}
}

// functionBody extracts the lines of asm between a function's entry label
// and the next top-level label at the same function scope, so assertions
// about one function's instructions cannot be tripped up by another's.
func functionBody(asm, fnName string) string {
	lines := strings.Split(asm, "\n")
	var sb strings.Builder
	inFn := false
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if strings.HasSuffix(trimmed, ":") && !strings.HasPrefix(trimmed, ".L") {
			inFn = trimmed == fnName+":"
			continue
		}
		if inFn {
			sb.WriteString(ln)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
