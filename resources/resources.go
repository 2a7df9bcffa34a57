package resources

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// FetchHTTP
// Fetch a resource from a remote HTTP server.
func FetchHTTP(uri string) (io.ReadCloser, error) {
	req, reqErr := http.NewRequest("GET", uri, nil)
	if reqErr != nil {
		return nil, reqErr
	}
	resp, remoteErr := http.DefaultClient.Do(req)
	if remoteErr != nil {
		return nil, remoteErr
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, errors.New(fmt.Sprintf("HTTP status code %d",
			resp.StatusCode))
	}
	return resp.Body, nil
}

// SizeHTTP
// Get the size of a resource from a remote HTTP server. Servers that do not
// report a Content-Length yield a size of 0.
func SizeHTTP(uri string) (uint, error) {
	req, reqErr := http.NewRequest("HEAD", uri, nil)
	if reqErr != nil {
		return 0, reqErr
	}
	resp, remoteErr := http.DefaultClient.Do(req)
	if remoteErr != nil {
		return 0, remoteErr
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		return 0, errors.New(fmt.Sprintf("HTTP status code %d",
			resp.StatusCode))
	}
	size, _ := strconv.Atoi(resp.Header.Get("Content-Length"))
	return uint(size), nil
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
