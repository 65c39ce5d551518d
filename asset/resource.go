package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Resource wraps a streamable local file or remote (http/https) document.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return locationString(r.url)
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Resolve pathToResource against the location of another resource path. Paths
// that define a scheme, absolute local paths and calls with an empty relTo are
// returned unchanged (apart from separator normalization).
func ResolvePath(pathToResource, relTo string) (string, error) {
	var parent *url.URL
	if relTo != "" {
		var err error
		if parent, err = parseLocation(relTo); err != nil {
			return "", err
		}
	}

	resolved, err := resolve(pathToResource, parent)
	if err != nil {
		return "", err
	}
	return locationString(resolved), nil
}

// Open a resource data stream. If relTo is specified and pathToResource does
// not define a scheme, then the new resource is looked up next to relTo.
//
// The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	var parent *url.URL
	if relTo != nil {
		parent = relTo.url
	}

	loc, err := resolve(pathToResource, parent)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch loc.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(loc.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(loc.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %w", loc.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", loc.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", loc.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        loc,
	}, nil
}

// Parse a path or URL. Backslashes are treated as path separators. Anything
// without a scheme separator is a local path and is kept verbatim.
func parseLocation(pathToResource string) (*url.URL, error) {
	location := strings.Replace(pathToResource, `\`, `/`, -1)
	if !strings.Contains(location, "://") {
		return &url.URL{Path: location}, nil
	}

	loc, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("resource: invalid location '%s': %w", pathToResource, err)
	}
	return loc, nil
}

// Local paths are reported unescaped.
func locationString(loc *url.URL) string {
	if loc.Scheme == "" {
		return loc.Path
	}
	return loc.String()
}

func resolve(pathToResource string, relTo *url.URL) (*url.URL, error) {
	loc, err := parseLocation(pathToResource)
	if err != nil {
		return nil, err
	}

	if loc.Scheme != "" || relTo == nil || filepath.IsAbs(loc.Path) {
		return loc, nil
	}

	// Clone parent location and replace the last path segment
	path := loc.Path
	parent := *relTo
	parent.RawQuery = ""
	parent.Fragment = ""
	parent.RawPath = ""
	if parent.Scheme == "" {
		parent.Path = filepath.Join(filepath.Dir(parent.Path), path)
	} else {
		dir := parent.Path[:strings.LastIndex(parent.Path, "/")+1]
		parent.Path = dir + path
	}
	return &parent, nil
}
