package resources

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wbrown/bert_prep/types"
)

// WriteCounter counts the number of bytes written to it, and every 10 seconds,
// it prints a message reporting the number of bytes written so far.
type WriteCounter struct {
	Total    uint64
	Last     time.Time
	Reported bool
	Path     string
	Size     uint64
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Since(wc.Last).Seconds() > 10 {
		wc.Reported = true
		wc.Last = time.Now()
		log.Printf("Downloading %s... %s / %s completed.",
			wc.Path, humanize.Bytes(wc.Total), humanize.Bytes(wc.Size))
	}
	return n, nil
}

// ResolveVocab
// Resolves a vocabulary location to a loaded Vocab. Local paths are loaded
// directly; URLs are downloaded to a temporary directory first, keeping
// the remote file name so that `.model` files are still recognized.
func ResolveVocab(uri string) (*types.Vocab, error) {
	if !isValidUrl(uri) {
		return LoadVocab(uri)
	}
	dir, dirErr := os.MkdirTemp("", "vocab")
	if dirErr != nil {
		return nil, dirErr
	}
	defer os.RemoveAll(dir)

	u, _ := url.Parse(uri)
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		name = "vocab.txt"
	}
	targetPath := path.Join(dir, name)

	log.Printf("Resolving %s... ", uri)
	// A missing Content-Length only affects progress reporting.
	rsrcSize, _ := SizeHTTP(uri)
	rsrcReader, rsrcErr := FetchHTTP(uri)
	if rsrcErr != nil {
		return nil, errors.New(fmt.Sprintf(
			"cannot retrieve `%s`: %s", uri, rsrcErr))
	}
	defer rsrcReader.Close()

	rsrcFile, rsrcFileErr := os.OpenFile(targetPath,
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if rsrcFileErr != nil {
		return nil, errors.New(fmt.Sprintf(
			"error opening '%s' for write: %s", targetPath, rsrcFileErr))
	}
	counter := &WriteCounter{
		Last: time.Now(),
		Path: uri,
		Size: uint64(rsrcSize),
	}
	bytesDownloaded, ioErr := io.Copy(rsrcFile,
		io.TeeReader(rsrcReader, counter))
	if closeErr := rsrcFile.Close(); ioErr == nil {
		ioErr = closeErr
	}
	if ioErr != nil {
		return nil, errors.New(fmt.Sprintf("error downloading '%s': %s",
			uri, ioErr))
	}
	log.Printf("Downloaded %s... %s completed.", uri,
		humanize.Bytes(uint64(bytesDownloaded)))
	return LoadVocab(targetPath)
}
