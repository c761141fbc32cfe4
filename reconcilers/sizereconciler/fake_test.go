/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizereconciler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-github/v84/github"
	"github.com/stretchr/testify/require"
)

// fakeGitHub serves the subset of the REST API used by a reconciliation pass.
type fakeGitHub struct {
	t  *testing.T
	mu sync.Mutex

	state      string
	prLabels   []string
	files      []*github.CommitFile
	pageSize   int
	repoLabels map[string]string // name -> color
	contents   map[string]string // "{repo}:{path}" -> content
	large      map[string]bool   // "{repo}:{path}" served without inline content
	failures   map[string]int    // route -> status code
	hideLabels bool              // label lookups report 404 even for existing labels

	reads        []string
	labelLookups []string
	created      []*github.Label
	added        []string
	removed      []string
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *github.Client) {
	t.Helper()
	f := &fakeGitHub{
		t:          t,
		state:      "open",
		pageSize:   2,
		repoLabels: map[string]string{},
		contents:   map[string]string{},
		large:      map[string]bool{},
		failures:   map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/{owner}/{repo}/pulls/{number}", f.route("getPull", f.getPull))
	mux.HandleFunc("GET /repos/{owner}/{repo}/pulls/{number}/files", f.route("listFiles", f.listFiles))
	mux.HandleFunc("GET /repos/{owner}/{repo}/contents/{path...}", f.route("getContents", f.getContents))
	mux.HandleFunc("GET /repos/{owner}/{repo}/git/blobs/{sha}", f.route("getBlob", f.getBlob))
	mux.HandleFunc("GET /repos/{owner}/{repo}/labels/{name}", f.route("getLabel", f.getLabel))
	mux.HandleFunc("POST /repos/{owner}/{repo}/labels", f.route("createLabel", f.createLabel))
	mux.HandleFunc("POST /repos/{owner}/{repo}/issues/{number}/labels", f.route("addLabels", f.addLabels))
	mux.HandleFunc("DELETE /repos/{owner}/{repo}/issues/{number}/labels/{name}", f.route("removeLabel", f.removeLabel))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gh := github.NewClient(srv.Client())
	u, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = u
	return f, gh
}

func (f *fakeGitHub) setFiles(files ...*github.CommitFile) {
	f.files = files
}

func file(name string, additions, deletions int) *github.CommitFile {
	return &github.CommitFile{
		Filename:  github.Ptr(name),
		Additions: github.Ptr(additions),
		Deletions: github.Ptr(deletions),
		Changes:   github.Ptr(additions + deletions),
		Status:    github.Ptr("modified"),
	}
}

func patched(name string, additions int, patch string) *github.CommitFile {
	cf := file(name, additions, 0)
	cf.Status = github.Ptr("added")
	cf.Patch = github.Ptr(patch)
	return cf
}

func (f *fakeGitHub) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if code, ok := f.failures[name]; ok {
			writeJSON(w, code, map[string]string{"message": http.StatusText(code)})
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
}

func (f *fakeGitHub) labelObjects(names []string) []*github.Label {
	out := make([]*github.Label, 0, len(names))
	for _, n := range names {
		out = append(out, &github.Label{Name: github.Ptr(n)})
	}
	return out
}

func (f *fakeGitHub) getPull(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.PathValue("number"))
	writeJSON(w, http.StatusOK, &github.PullRequest{
		Number: github.Ptr(n),
		State:  github.Ptr(f.state),
		Labels: f.labelObjects(f.prLabels),
	})
}

func (f *fakeGitHub) listFiles(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		page, _ = strconv.Atoi(p)
	}
	start := min((page-1)*f.pageSize, len(f.files))
	end := min(start+f.pageSize, len(f.files))
	if end < len(f.files) {
		w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=%d>; rel="next"`, r.Host, r.URL.Path, page+1))
	}
	writeJSON(w, http.StatusOK, f.files[start:end])
}

func (f *fakeGitHub) getContents(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("repo") + ":" + r.PathValue("path")
	f.reads = append(f.reads, key)
	content, ok := f.contents[key]
	if !ok {
		notFound(w)
		return
	}
	if f.large[key] {
		writeJSON(w, http.StatusOK, map[string]any{
			"type":     "file",
			"encoding": "none",
			"content":  "",
			"name":     r.PathValue("path"),
			"path":     r.PathValue("path"),
			"sha":      blobSHA(key),
			"size":     len(content),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"type":     "file",
		"encoding": "base64",
		"name":     r.PathValue("path"),
		"path":     r.PathValue("path"),
		"content":  base64.StdEncoding.EncodeToString([]byte(content)),
	})
}

func blobSHA(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func (f *fakeGitHub) getBlob(w http.ResponseWriter, r *http.Request) {
	for key, content := range f.contents {
		if f.large[key] && blobSHA(key) == r.PathValue("sha") {
			w.Header().Set("Content-Type", "application/vnd.github.raw")
			_, _ = w.Write([]byte(content))
			return
		}
	}
	notFound(w)
}

func (f *fakeGitHub) getLabel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f.labelLookups = append(f.labelLookups, name)
	color, ok := f.repoLabels[name]
	if !ok || f.hideLabels {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, &github.Label{Name: github.Ptr(name), Color: github.Ptr(color)})
}

func (f *fakeGitHub) createLabel(w http.ResponseWriter, r *http.Request) {
	var l github.Label
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if _, ok := f.repoLabels[l.GetName()]; ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Validation Failed",
			"errors":  []map[string]string{{"resource": "Label", "code": "already_exists", "field": "name"}},
		})
		return
	}
	f.repoLabels[l.GetName()] = l.GetColor()
	f.created = append(f.created, &l)
	writeJSON(w, http.StatusCreated, &l)
}

func (f *fakeGitHub) addLabels(w http.ResponseWriter, r *http.Request) {
	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	for _, n := range names {
		if _, ok := f.repoLabels[n]; !ok {
			// GitHub creates missing labels implicitly; the reconciler should not rely on it.
			f.t.Errorf("label %q attached before it was created", n)
		}
		if !slices.Contains(f.prLabels, n) {
			f.prLabels = append(f.prLabels, n)
		}
		f.added = append(f.added, n)
	}
	writeJSON(w, http.StatusOK, f.labelObjects(f.prLabels))
}

func (f *fakeGitHub) removeLabel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	i := slices.Index(f.prLabels, name)
	if i < 0 {
		notFound(w)
		return
	}
	f.prLabels = slices.Delete(f.prLabels, i, i+1)
	f.removed = append(f.removed, name)
	writeJSON(w, http.StatusOK, f.labelObjects(f.prLabels))
}
