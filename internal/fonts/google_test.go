package fonts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFolders(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Inter", []string{"inter"}},
		{"Open Sans", []string{"opensans", "open-sans"}},
		{"  ", nil},
	}
	for _, tt := range tests {
		if got := Folders(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Folders(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// fakeGoogle serves a listing for "opensans" and the font bytes under /raw/.
func fakeGoogle(t *testing.T) (*Remote, *int) {
	t.Helper()
	fetches := 0
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	raw := srv.URL + "/raw/"
	mux.HandleFunc("/api/opensans", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]githubFile{
			{Name: "OFL.txt", Type: "file", DownloadURL: raw + "OFL.txt"},
			{Name: "OpenSans-Italic.ttf", Type: "file", DownloadURL: raw + "OpenSans-Italic.ttf"},
			{Name: "OpenSans-Regular.ttf", Type: "file", DownloadURL: raw + "OpenSans-Regular.ttf"},
			{Name: "Evil.ttf", Type: "file", DownloadURL: "https://example.com/Evil.ttf"},
		})
	})
	mux.HandleFunc("/api/italiconly", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]githubFile{
			{Name: "Only-Italic.otf", Type: "file", DownloadURL: raw + "Only-Italic.otf"},
		})
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte("font-bytes"))
	})
	return &Remote{APIBase: srv.URL + "/api", RawPrefix: raw, Client: srv.Client()}, &fetches
}

func TestDownloadURL(t *testing.T) {
	r, _ := fakeGoogle(t)
	ctx := context.Background()

	got, err := r.DownloadURL(ctx, "opensans")
	if err != nil {
		t.Fatal(err)
	}
	if want := r.RawPrefix + "OpenSans-Regular.ttf"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	got, err = r.DownloadURL(ctx, "italiconly")
	if err != nil {
		t.Fatal(err)
	}
	if want := r.RawPrefix + "Only-Italic.otf"; got != want {
		t.Fatalf("italic fallback: got %s, want %s", got, want)
	}

	if _, err := r.DownloadURL(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown family")
	}
}

func TestFetchWritesOnce(t *testing.T) {
	r, fetches := fakeGoogle(t)
	dir := t.TempDir()

	path, err := r.Fetch(context.Background(), "Open Sans", dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "OpenSans", "OpenSans-Regular.ttf"); path != want {
		t.Fatalf("path %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "font-bytes" {
		t.Fatalf("content %q, err %v", data, err)
	}
	if _, err := r.Fetch(context.Background(), "Open Sans", dir); err != nil {
		t.Fatal(err)
	}
	if *fetches != 1 {
		t.Fatalf("font downloaded %d times", *fetches)
	}

	// the fetched file is found by name afterwards
	found, err := Resolve("Open Sans", []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if found != path {
		t.Fatalf("Resolve found %s, want %s", found, path)
	}
}
