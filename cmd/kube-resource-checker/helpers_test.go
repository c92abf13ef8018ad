package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever was written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	r.Close()

	return buf.String()
}

// isolateEnv points HOME at an empty dir and clears the KRC_* variables so
// no user config leaks into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KRC_LABEL", "")
	t.Setenv("KRC_RESOURCE", "")
	t.Setenv("KRC_KUBECONFIG", "")
}

// setFakeClient installs a fake clientset for the duration of the test
// and restores the original getClientFunc on cleanup.
func setFakeClient(t *testing.T, objects ...runtime.Object) *fake.Clientset {
	t.Helper()
	client := fake.NewSimpleClientset(objects...)
	orig := getClientFunc
	getClientFunc = func(string, string) (kubernetes.Interface, error) {
		return client, nil
	}
	t.Cleanup(func() { getClientFunc = orig })
	return client
}

// runRoot executes the root command with args and returns its stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)

	var err error
	out := captureStdout(t, func() {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		err = cmd.Execute()
	})
	return out, err
}
