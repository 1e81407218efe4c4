package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// releaseAssets maps goos/goarch to the archive goreleaser publishes for
// it. Darwin releases ship one universal binary for both architectures.
var releaseAssets = map[string]string{
	"darwin/amd64":  "studyhub_Darwin_all.tar.gz",
	"darwin/arm64":  "studyhub_Darwin_all.tar.gz",
	"linux/386":     "studyhub_Linux_i386.tar.gz",
	"linux/amd64":   "studyhub_Linux_x86_64.tar.gz",
	"linux/arm64":   "studyhub_Linux_arm64.tar.gz",
	"windows/amd64": "studyhub_Windows_x86_64.zip",
	"windows/arm64": "studyhub_Windows_arm64.zip",
}

func assetFor(goos, goarch string) (string, error) {
	asset, ok := releaseAssets[goos+"/"+goarch]
	if !ok {
		return "", fmt.Errorf("no release is published for %s/%s", goos, goarch)
	}
	return asset, nil
}

// UpdateInput selects the version to install. An empty TargetVersion
// means the latest published release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress reports one stage of an in-flight update.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update downloads the release archive for this platform, verifies it
// against the release's checksums.txt, and swaps the running executable
// in place.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, report func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := input.TargetVersion
	if tag == "" {
		report(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	asset, err := assetFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", tag)})
	archive, err := c.fetchAsset(ctx, tag, asset)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := c.fetchAsset(ctx, tag, "checksums.txt")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, err := checksumFor(sums, asset)
	if err != nil {
		return err
	}
	if got := sha256.Sum256(archive); hex.EncodeToString(got[:]) != want {
		return fmt.Errorf("%w: %s does not match checksums.txt", ErrChecksum, asset)
	}

	report(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	binary, err := unpack(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(target, binary); err != nil {
		return err
	}

	report(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", tag)})
	return nil
}

// fetchAsset downloads one file attached to the given release tag.
func (c *Checker) fetchAsset(ctx context.Context, tag, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// checksumFor finds the named asset in a goreleaser checksums.txt body,
// one "<sha256 hex>  <filename>" pair per line.
func checksumFor(sums []byte, asset string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == asset {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("no checksum for %s in checksums.txt", asset)
}

// unpack pulls the studyhub binary out of a release archive. Windows
// releases are zips holding studyhub.exe, everything else is a tar.gz.
func unpack(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		if err != nil {
			return nil, fmt.Errorf("open zip: %w", err)
		}
		for _, f := range zr.File {
			if filepath.Base(f.Name) != "studyhub.exe" {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer func() { _ = rc.Close() }()
			return io.ReadAll(rc)
		}
		return nil, errors.New("studyhub.exe not found in archive")
	}

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("studyhub not found in archive")
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == "studyhub" {
			return io.ReadAll(tr)
		}
	}
}

// replaceExecutable stages the new binary next to the old one and renames
// it over the top, keeping the original permission bits. Staging as a
// sibling keeps the rename on one filesystem.
func replaceExecutable(target string, binary []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staged := target + ".new"
	if err := os.WriteFile(staged, binary, info.Mode().Perm()); err != nil {
		return fmt.Errorf("stage binary: %w", err)
	}
	if err := os.Rename(staged, target); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("swap binary: %w", err)
	}
	return nil
}
