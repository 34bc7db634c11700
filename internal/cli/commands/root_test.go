package commands

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "hypermedia", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"version", "serve", "flatten", "routes"})
}

func TestVersionCommand(t *testing.T) {
	Version, GitCommit, BuildDate, GoVersion = "1.0.0-test", "abc123", "2025-01-01", "go1.23"

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    1.0.0-test")
	assert.Contains(t, out, "Git commit: abc123")
	assert.Contains(t, out, "Go version: go1.23")
}

func TestFlattenJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "person.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Bilbo","age":111,"tags":["a"],"ring":null}`), 0o644))

	out, err := execute(t, "", "flatten", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uber":{"version":"1.0","data":[
		{"name":"age","value":111},
		{"name":"name","value":"Bilbo"},
		{"name":"ring","value":null},
		{"name":"tags","data":[{"value":"a"}]}
	]}}`, out)
}

func TestFlattenYAMLStdin(t *testing.T) {
	out, err := execute(t, "- name: Bilbo\n- name: Frodo\n", "flatten", "--pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  ")
	assert.JSONEq(t, `{"uber":{"version":"1.0","data":[
		{"data":[{"name":"name","value":"Bilbo"}]},
		{"data":[{"name":"name","value":"Frodo"}]}
	]}}`, out)
}

func TestFlattenScalar(t *testing.T) {
	out, err := execute(t, "42", "flatten", "-", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"uber":{"version":"1.0","data":[{"value":42}]}}`, out)
}

func TestFlattenErrors(t *testing.T) {
	_, err := execute(t, "{", "flatten", "--format", "json")
	assert.ErrorContains(t, err, "failed to parse")

	_, err = execute(t, "a: 1", "flatten", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "", "flatten", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, "", "routes", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "METHOD")
	assert.Contains(t, out, "/people/customer/{personId}/details")
	assert.Contains(t, out, "customerByMood")
	assert.Equal(t, 11, strings.Count(out, "/people"))
}

func TestRoutesCommandInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hypermedia.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 0\n"), 0o644))

	_, err := execute(t, "", "routes", "--config", path)
	assert.Error(t, err)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServeCommand(t *testing.T) {
	port := freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--port", fmt.Sprint(port)})
	t.Setenv("HYPERMEDIA_SERVER_HOST", "127.0.0.1")
	t.Setenv("HYPERMEDIA_LOG_LEVEL", "error")

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/people/customer?personId=1234", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK &&
			resp.Header.Get("X-Request-ID") != "" &&
			resp.Header.Get("Content-Type") == "application/vnd.uber+json"
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/nowhere", port))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeCommandRejectsInvalidPort(t *testing.T) {
	_, err := execute(t, "", "serve", "--port", "70000")
	assert.Error(t, err)
}
