package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/podhmo/literaleval/internal/config"
)

// runApp runs the command in a fresh working directory and returns the
// exit code with captured stdout and stderr.
func runApp(t *testing.T, cwd, stdin string, env map[string]string, args ...string) (int, string, string) {
	t.Helper()
	if cwd == "" {
		cwd = t.TempDir()
	}
	var stdout, stderr bytes.Buffer
	a := &app{
		stdin:  strings.NewReader(stdin),
		stdout: &stdout,
		stderr: &stderr,
		cwd:    cwd,
		getenv: func(k string) string { return env[k] },
	}
	code := a.run(context.Background(), args)
	return code, stdout.String(), stderr.String()
}

func TestRun_Eval(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		stdin      string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "arguments",
			args:       []string{"eval", "[1, 2]", "{'a': (1,)}", "  -3"},
			wantStdout: "[1, 2]\n{'a': (1,)}\n-3\n",
		},
		{
			name:       "stdin lines",
			args:       []string{"eval"},
			stdin:      "1 + 2j\n\n  \nb'x'\n",
			wantStdout: "(1+2j)\nb'x'\n",
		},
		{
			name:       "recursive strategy",
			args:       []string{"eval", "-strategy", "recursive", "{1, 2}"},
			wantStdout: "{1, 2}\n",
		},
		{
			name:       "syntax error shows a caret",
			args:       []string{"eval", "[1,"},
			wantCode:   1,
			wantStderr: "SyntaxError at 1:",
		},
		{
			name:       "rejected node",
			args:       []string{"eval", "1", "foo"},
			wantCode:   1,
			wantStdout: "1\n",
			wantStderr: "malformed node or string",
		},
		{
			name:       "digit limit",
			args:       []string{"eval", "-max-int-digits", "3", "1234"},
			wantCode:   1,
			wantStderr: "SyntaxError",
		},
		{
			name:       "frame limit",
			args:       []string{"eval", "-max-frames", "2", "[[[1]]]"},
			wantCode:   1,
			wantStderr: "frame limit",
		},
		{
			name:     "invalid strategy",
			args:     []string{"eval", "-strategy", "bfs", "1"},
			wantCode: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := runApp(t, "", tc.stdin, nil, tc.args...)
			assert.Equal(t, tc.wantCode, code, "stderr: %s", stderr)
			if tc.wantCode == 0 || tc.wantStdout != "" {
				assert.Equal(t, tc.wantStdout, stdout)
			}
			if tc.wantStderr != "" {
				assert.Contains(t, stderr, tc.wantStderr)
			}
		})
	}
}

func TestRun_EvalSyntaxSnippet(t *testing.T) {
	code, _, stderr := runApp(t, "", "", nil, "eval", "(1, 2")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "   1 | (1, 2\n")
	assert.Contains(t, stderr, "^\n")
}

func TestRun_EvalYAML(t *testing.T) {
	code, stdout, stderr := runApp(t, "", "", nil, "eval", "-format", "yaml", "{'a': [1, 2]}", "(3, b'hi')")
	require.Equal(t, 0, code, stderr)

	docs := strings.Split(stdout, "---\n")
	require.Len(t, docs, 2)

	var m map[string][]int
	require.NoError(t, yaml.Unmarshal([]byte(docs[0]), &m))
	assert.Equal(t, map[string][]int{"a": {1, 2}}, m)
	assert.Contains(t, docs[1], "!!binary")
}

func TestRun_EvalYAMLSkipsFailedDocuments(t *testing.T) {
	code, stdout, stderr := runApp(t, "", "", nil, "eval", "-format", "yaml", "foo", "[1]", "bar", "2")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "malformed node or string")
	assert.Equal(t, "- 1\n---\n2\n", stdout)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestRun_EvalWriteError(t *testing.T) {
	for _, format := range []string{config.FormatYAML, config.FormatRepr} {
		t.Run(format, func(t *testing.T) {
			var stderr bytes.Buffer
			a := &app{
				stdin:  strings.NewReader(""),
				stdout: failingWriter{},
				stderr: &stderr,
				cwd:    t.TempDir(),
				getenv: func(string) string { return "" },
			}
			code := a.run(context.Background(), []string{"eval", "-format", format, "[1]"})
			assert.Equal(t, 1, code)
		})
	}
}

func TestRun_Config(t *testing.T) {
	writeConfig := func(t *testing.T, dir, name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("working directory file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, config.FileName, "format: yaml\n")
		code, stdout, stderr := runApp(t, dir, "", nil, "eval", "[1]")
		require.Equal(t, 0, code, stderr)
		assert.Equal(t, "- 1\n", stdout)
	})

	t.Run("flag overrides file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, config.FileName, "format: yaml\n")
		code, stdout, stderr := runApp(t, dir, "", nil, "eval", "-format", "repr", "[1]")
		require.Equal(t, 0, code, stderr)
		assert.Equal(t, "[1]\n", stdout)
	})

	t.Run("environment variable", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "custom.yaml", "max-int-digits: 2\n")
		code, _, stderr := runApp(t, "", "", map[string]string{configEnv: path}, "eval", "123")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "SyntaxError")
	})

	t.Run("explicit flag wins over environment", func(t *testing.T) {
		dir := t.TempDir()
		strict := writeConfig(t, dir, "strict.yaml", "max-int-digits: 2\n")
		loose := writeConfig(t, dir, "loose.yaml", "max-int-digits: 0\n")
		code, stdout, stderr := runApp(t, "", "", map[string]string{configEnv: strict}, "eval", "-config", loose, "123")
		require.Equal(t, 0, code, stderr)
		assert.Equal(t, "123\n", stdout)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		code, _, _ := runApp(t, "", "", nil, "eval", "-config", filepath.Join(t.TempDir(), "nope.yaml"), "1")
		assert.Equal(t, 1, code)
	})

	t.Run("unknown key", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, config.FileName, "strategie: stack\n")
		code, _, _ := runApp(t, dir, "", nil, "eval", "1")
		assert.Equal(t, 1, code)
	})
}

func TestRun_Dump(t *testing.T) {
	code, stdout, stderr := runApp(t, "", "", nil, "dump", "--", "-(1)")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "UnaryOp @")
	assert.Contains(t, stdout, "op: USub()")
	assert.Contains(t, stdout, "value: 1")

	code, _, stderr = runApp(t, "", "", nil, "dump", "1 +")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "SyntaxError")
}

func TestRun_Verify(t *testing.T) {
	code, stdout, stderr := runApp(t, "", "(1, -2.5)\n{'k': {1j}}\nname\n", nil, "verify")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ok   (1, -2.5) => (1, -2.5)", lines[0])
	assert.Equal(t, "ok   {'k': {1j}} => {'k': {1j}}", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "ok   name (rejected: malformed node or string"), lines[2])
}

func TestRun_Help(t *testing.T) {
	t.Run("subcommand", func(t *testing.T) {
		code, _, stderr := runApp(t, "", "", nil, "eval", "-h")
		assert.Equal(t, 0, code)
		assert.Contains(t, stderr, "Usage:\n  literaleval eval [flags] [expr...]\n")
		assert.Contains(t, stderr, "(allowed: \"stack\", \"recursive\")")
		assert.Contains(t, stderr, "(env: "+configEnv+")")
	})

	t.Run("overview", func(t *testing.T) {
		code, stdout, _ := runApp(t, "", "", nil, "help")
		assert.Equal(t, 0, code)
		for _, name := range []string{"eval", "dump", "verify"} {
			assert.Contains(t, stdout, "  "+name+" ")
		}
	})

	t.Run("no arguments", func(t *testing.T) {
		code, _, stderr := runApp(t, "", "", nil)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Subcommands:")
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		code, _, stderr := runApp(t, "", "", nil, "emit")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Unknown subcommand 'emit'")
	})
}
