package deploy

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidArchive = errors.New("invalid archive")

// Uploader materializes payloads onto a transfer server. It holds no
// per-request state; every call dials its own session and releases it
// before returning.
type Uploader struct {
	dial DialFunc
}

func NewUploader() *Uploader {
	return &Uploader{dial: DialFTP}
}

// NewUploaderWithDialer builds an uploader with a custom dialer (e.g. for tests).
func NewUploaderWithDialer(dial DialFunc) *Uploader {
	return &Uploader{dial: dial}
}

// UploadFile stores a single payload at remotePath.
func (u *Uploader) UploadFile(t Target, remotePath string, data []byte) error {
	sess, err := u.dial(t)
	if err != nil {
		return err
	}
	defer sess.Close()
	return sess.Upload(remotePath, bytes.NewReader(data))
}

// UploadArchive unpacks a zip archive onto the server under basePath,
// creating intermediate directories as it goes. Entries are processed in
// archive order over one session; the first failure aborts the rest, and
// files uploaded before it stay on the server. Returns the number of
// non-directory entries uploaded.
func (u *Uploader) UploadArchive(t Target, basePath string, archive []byte) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	for _, f := range zr.File {
		if isDir(f) {
			continue
		}
		if !safeEntry(f.Name) {
			return 0, fmt.Errorf("%w: unsafe entry name %q", ErrInvalidArchive, f.Name)
		}
	}

	sess, err := u.dial(t)
	if err != nil {
		return 0, err
	}
	defer sess.Close()

	uploaded := 0
	for _, f := range zr.File {
		if isDir(f) {
			continue
		}
		for _, dir := range parentDirs(basePath, f.Name) {
			if err := sess.EnsureDir(dir); err != nil {
				return uploaded, err
			}
		}
		rc, err := f.Open()
		if err != nil {
			return uploaded, err
		}
		err = sess.Upload(joinRemote(basePath, f.Name), rc)
		rc.Close()
		if err != nil {
			return uploaded, err
		}
		uploaded++
	}
	return uploaded, nil
}

func isDir(f *zip.File) bool {
	return f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/")
}
