package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalResource(t *testing.T) {
	dir := t.TempDir()
	objFile := filepath.Join(dir, "cube.obj")
	if err := os.WriteFile(objFile, []byte("v 0 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewResource(objFile, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatal("expected local resource not to be flagged as remote")
	}
	if res.Path() != objFile {
		t.Fatalf("expected resource path to be %s; got %s", objFile, res.Path())
	}

	data, err := io.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v 0 0 0\n" {
		t.Fatalf("unexpected resource contents %q", string(data))
	}
}

func TestMissingLocalResource(t *testing.T) {
	_, err := NewResource(filepath.Join(t.TempDir(), "missing.obj"), nil)
	if err == nil || !os.IsNotExist(err) {
		t.Fatalf("expected to get a not-exist error; got %v", err)
	}
}

func TestHttpResource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cube.mtl"), []byte("newmtl foo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer server.Close()

	fetchUrl := server.URL + "/cube.mtl"
	res, err := NewResource(fetchUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if !res.IsRemote() {
		t.Fatal("expected http resource to be flagged as remote")
	}

	fetchUrl = server.URL + "/file-not-found.foo"
	expError := fmt.Sprintf("resource: could not fetch '%s': status %d", fetchUrl, 404)
	_, err = NewResource(fetchUrl, nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestRelativeResources(t *testing.T) {
	serverHits := 0
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverHits++
		if r.URL.Path == "/foo/scene.obj" || r.URL.Path == "/foo/scene.mtl" {
			w.Write([]byte("OK"))
		} else {
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	res1, err := NewResource(server.URL+"/foo/scene.obj", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res1.Close()
	res2, err := NewResource("scene.mtl", res1)
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Close()

	if serverHits != 2 {
		t.Fatalf("expected server to receive 2 requests; got %d", serverHits)
	}

	expPath := server.URL + "/foo/scene.mtl"
	if res2.Path() != expPath {
		t.Fatalf("expected relative resource path to be %s; got %s", expPath, res2.Path())
	}
}

func TestResolvePath(t *testing.T) {
	type spec struct {
		path, relTo string
		exp         string
	}
	specs := []spec{
		{"scene.mtl", "", "scene.mtl"},
		{"scene.mtl", "models/scene.obj", filepath.Join("models", "scene.mtl")},
		{`textures\wood.mtl`, "models/scene.obj", filepath.Join("models", "textures", "wood.mtl")},
		{"my scene.mtl", "models/scene.obj", filepath.Join("models", "my scene.mtl")},
		{"/abs/scene.mtl", "models/scene.obj", "/abs/scene.mtl"},
		{"scene.mtl", "http://example.com/foo/scene.obj", "http://example.com/foo/scene.mtl"},
		{"http://other.com/a.mtl", "models/scene.obj", "http://other.com/a.mtl"},
	}

	for idx, s := range specs {
		got, err := ResolvePath(s.path, s.relTo)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", idx, err)
		}
		if got != s.exp {
			t.Fatalf("[spec %d] expected %q; got %q", idx, s.exp, got)
		}
	}
}

func TestUnsupportedResourceScheme(t *testing.T) {
	expError := "resource: unsupported scheme 'gopher'"
	_, err := NewResource("gopher://digging.go", nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}
