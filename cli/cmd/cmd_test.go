package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// flag values survive between executions of the same command tree
	directory, exclude, concurrency, verbose, format = ".", nil, 0, false, ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

const userProto = `package acme;
option java_package = "com.acme";

message User {
  message Address {
  }
}
service UserService {}
`

func TestScanCommand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"acme/user.proto":   userProto,
		"vendor/dep.proto":  "message Dep {}\n",
		"notes/readme.txt":  "message NotScanned {}\n",
		".hidden/x.proto":   "message Hidden {}\n",
		"acme/empty.proto":  "",
		"acme/ignore.proto": "message Ignored {}\n",
	})

	t.Run("text", func(t *testing.T) {
		out, err := run(t, "-d", dir, "-x", "vendor/**", "-x", "**/ignore.proto", "scan")
		require.NoError(t, err)
		assert.Equal(t, `acme/empty.proto:
  outer class: Empty
  multiple files: false

acme/user.proto:
  package: com.acme
  outer class: User
  multiple files: false
  services: UserService
  messages: User
`, out)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "-d", dir, "scan", "--format", "yaml")
		require.NoError(t, err)

		var parsed []map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
		require.Len(t, parsed, 4)
		assert.Equal(t, "acme/user.proto", parsed[2]["path"])
		assert.Equal(t, "com.acme", parsed[2]["package"])
		assert.Equal(t, []interface{}{"User"}, parsed[2]["messages"])
		assert.Equal(t, "vendor/dep.proto", parsed[3]["path"])
	})

	t.Run("repr", func(t *testing.T) {
		out, err := run(t, "-d", dir, "scan", "-f", "repr", filepath.Join(dir, "acme", "user.proto"))
		require.NoError(t, err)
		assert.Contains(t, out, "UserService")
		assert.NotContains(t, out, "Dep")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "-d", dir, "scan", "-f", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})

	t.Run("format from config", func(t *testing.T) {
		withConfig := writeFiles(t, map[string]string{
			"protocode.yaml": "format: yaml\nexclude: [\"b.proto\"]\n",
			"a.proto":        "message A {}\n",
			"b.proto":        "message B {}\n",
		})
		out, err := run(t, "-d", withConfig, "scan")
		require.NoError(t, err)
		assert.Contains(t, out, "path: a.proto")
		assert.NotContains(t, out, "b.proto")
	})

	t.Run("listed file inside hidden directory", func(t *testing.T) {
		cacheDir := writeFiles(t, map[string]string{
			".cache/proj/a.proto": "package a;\nmessage A {}\n",
		})
		out, err := run(t, "-d", cacheDir, "scan", filepath.Join(cacheDir, ".cache", "proj", "a.proto"))
		require.NoError(t, err)
		assert.Equal(t, `a.proto:
  package: a
  outer class: A
  multiple files: false
  messages: A
`, out)
	})

	t.Run("same contents in several files", func(t *testing.T) {
		sameDir := writeFiles(t, map[string]string{
			"a/common.proto": "syntax = \"proto3\";\n",
			"b/common.proto": "syntax = \"proto3\";\n",
		})
		out, err := run(t, "-d", sameDir, "scan")
		require.NoError(t, err)
		assert.Contains(t, out, "a/common.proto:")
		assert.Contains(t, out, "b/common.proto:")
	})

	t.Run("no files", func(t *testing.T) {
		out, err := run(t, "-d", t.TempDir(), "scan")
		require.NoError(t, err)
		assert.Equal(t, "No .proto files found in given paths\n", out)
	})
}

func TestDepCommand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"acme/user.proto": userProto,
		"b.proto":         "option java_multiple_files = true;\nenum E { X = 0; }\n",
	})
	out, err := run(t, "-d", dir, "dep")
	require.NoError(t, err)
	assert.Equal(t, `acme/user.proto:
  service UserService -> com.acme.User.UserService
  message User -> com.acme.User.User

b.proto:
  enum E -> E
`, out)

	out, err = run(t, "-d", t.TempDir(), "dep")
	require.NoError(t, err)
	assert.Equal(t, "No top-level declarations found in given paths\n", out)
}

func TestGenfilesCommand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"acme/user.proto": userProto + "option java_multiple_files = true;\n",
	})
	out, err := run(t, "-d", dir, "genfiles")
	require.NoError(t, err)
	assert.Equal(t, `com/acme/User.java
com/acme/UserOrBuilder.java
com/acme/UserService.java
`, out)

	_, err = run(t, "-d", dir, "genfiles", "extra")
	assert.Error(t, err)
}

func TestHashCommand(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.proto": "message A {}\n"})
	first, err := run(t, "-d", dir, "hash")
	require.NoError(t, err)
	assert.Len(t, first, 13)

	second, err := run(t, "-d", dir, "hash")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFilenameCommand(t *testing.T) {
	out, err := run(t, "filename", "some/dir/foo.proto")
	require.NoError(t, err)
	assert.Equal(t, "foo\n", out)

	_, err = run(t, "filename", "some/dir/foo.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not end with .proto")
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		config, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Config{}, config)
	})

	t.Run("all fields", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{
			"protocode.yaml": `exclude:
  - "vendor/**"
  - "**_test.proto"
concurrency: 8
format: repr
`,
		})
		config, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, Config{
			Exclude:     []string{"vendor/**", "**_test.proto"},
			Concurrency: 8,
			Format:      "repr",
		}, config)
	})

	t.Run("unknown format", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"protocode.yaml": "format: xml\n"})
		_, err := LoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown format "xml"`)
	})

	t.Run("negative concurrency", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"protocode.yaml": "concurrency: -1\n"})
		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"protocode.yaml": "exclude: [\n"})
		_, err := LoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid protocode.yaml")
	})
}
