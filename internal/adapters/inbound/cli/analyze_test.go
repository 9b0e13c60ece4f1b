package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkdk/checkdk/internal/domain"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runAnalyzeJSON(t *testing.T, path string, extra ...string) (*domain.AnalysisResult, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // isolate from any real ~/.checkdk
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append([]string{"analyze", path, "--json"}, extra...))
	err := cmd.Execute()

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	return &result, err
}

func TestAnalyze_CleanComposeFile(t *testing.T) {
	path := writeFixture(t, "docker-compose.yml", `
services:
  web:
    image: nginx:1.25.3
`)

	result, err := runAnalyzeJSON(t, path)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Issues)
}

func TestAnalyze_PortConflictExitsNonZero(t *testing.T) {
	path := writeFixture(t, "docker-compose.yml", `
services:
  web:
    image: nginx:1.25.3
    ports: ["59080:80"]
  api:
    image: api:1.0
    ports: ["59080:3000"]
`)

	result, err := runAnalyzeJSON(t, path)
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.False(t, result.Success)
	assert.Equal(t, len(result.Issues), len(result.Fixes))
}

func TestAnalyze_KubernetesByFilename(t *testing.T) {
	path := writeFixture(t, "deployment.yaml", `
apiVersion: apps/v1
kind: Deployment
metadata:
  name: api
spec:
  selector:
    matchLabels:
      app: api
  template:
    metadata:
      labels:
        app: web
    spec:
      containers:
      - name: api
        image: api:1.0.0
        livenessProbe: {}
        readinessProbe: {}
        resources:
          limits:
            memory: 128Mi
        securityContext:
          runAsNonRoot: true
`)

	result, err := runAnalyzeJSON(t, path)
	require.Error(t, err)
	require.NotEmpty(t, result.Issues)
	assert.Equal(t, domain.KindLabelMismatch, result.Issues[0].Kind)
}

func TestAnalyze_UnsetEnvVarWarnsOnce(t *testing.T) {
	path := writeFixture(t, "docker-compose.yml", `
services:
  web:
    image: nginx:1.25.3
    environment:
      API_KEY: ${CHECKDK_TEST_UNSET_API_KEY}
`)

	result, err := runAnalyzeJSON(t, path)
	require.NoError(t, err)

	var envIssues []domain.Issue
	for _, issue := range result.Issues {
		if issue.Kind == domain.KindMissingEnvVar {
			envIssues = append(envIssues, issue)
		}
	}
	require.Len(t, envIssues, 1)
	assert.Equal(t, "CHECKDK_TEST_UNSET_API_KEY", envIssues[0].Details["variable"])
	assert.Equal(t, len(result.Issues), len(result.Fixes))
}

func TestAnalyze_ComposeShapedFileWithoutComposeName(t *testing.T) {
	path := writeFixture(t, "app.yml", `
services:
  worker:
    restart: always
`)

	result, err := runAnalyzeJSON(t, path)
	require.Error(t, err)
	require.NotEmpty(t, result.Issues)
	assert.Equal(t, domain.KindInvalidManifest, result.Issues[0].Kind)
	assert.Contains(t, result.Issues[0].Message, "'image' or 'build'")
}

func TestAnalyze_PlatformFlagOverridesFilename(t *testing.T) {
	// A compose-named file forced through the kubernetes pipeline.
	path := writeFixture(t, "docker-compose.yml", `
apiVersion: v1
kind: Pod
metadata:
  name: tool
spec:
  containers:
  - name: tool
    securityContext:
      runAsNonRoot: true
`)

	result, err := runAnalyzeJSON(t, path, "--platform", "kubernetes")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestResolvePlatform(t *testing.T) {
	assert.Equal(t, "compose", resolvePlatform("compose", "whatever.yaml"))
	assert.Equal(t, "kubernetes", resolvePlatform("kubernetes", "docker-compose.yml"))
	assert.Equal(t, "compose", resolvePlatform("", "docker-compose.yml"))
	assert.Equal(t, "compose", resolvePlatform("", "COMPOSE.override.yaml"))
	assert.Equal(t, "kubernetes", resolvePlatform("", "deployment.yaml"))
}

func TestResolvePlatform_SniffsComposeShape(t *testing.T) {
	path := writeFixture(t, "app.yml", "services:\n  web:\n    image: nginx:1.25.3\n")
	assert.Equal(t, "compose", resolvePlatform("", path))
}

func TestResolvePlatform_ManifestShapeStaysKubernetes(t *testing.T) {
	path := writeFixture(t, "app.yml", "apiVersion: v1\nkind: Service\nmetadata:\n  name: services\n")
	assert.Equal(t, "kubernetes", resolvePlatform("", path))
}
