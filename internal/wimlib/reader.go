// Package wimlib binds the container reader interface to the wimlib-imagex
// command-line tool. It is the externally provided collaborator of the
// metadata engine: all binary-format knowledge lives in wimlib, this adapter
// only parses the tool's output into per-image property maps.
package wimlib

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/deploymenttheory/go-wim/internal/interfaces"
	"github.com/deploymenttheory/go-wim/internal/types"
)

// DefaultBinary is the wimlib-imagex executable looked up on PATH when no
// explicit path is configured.
const DefaultBinary = "wimlib-imagex"

// DefaultCommandTimeout bounds each wimlib-imagex invocation.
const DefaultCommandTimeout = 30 * time.Second

// Config controls how the adapter invokes wimlib-imagex.
type Config struct {
	// Binary is the wimlib-imagex executable; defaults to DefaultBinary.
	Binary string

	// CommandTimeout bounds each invocation; defaults to
	// DefaultCommandTimeout.
	CommandTimeout time.Duration
}

// Reader is an open container handle backed by wimlib-imagex output. It is
// scoped to one request: opened, used and closed within the request, never
// shared across concurrent requests.
type Reader struct {
	path           string
	containerBytes int64
	imageCount     int
	bootIndex      int
	images         map[int]*imageEntry
}

// compile-time interface check
var _ interfaces.ContainerReader = (*Reader)(nil)

// Open opens a container file and loads its header info and XML document.
// Failures map onto the container-access error classes: ErrNotFound,
// ErrAccessDenied, ErrInvalidFormat.
func Open(ctx context.Context, path string, cfg Config) (*Reader, error) {
	if path == "" {
		return nil, types.NewContainerError(path, fmt.Errorf("empty container path: %w", types.ErrNotFound))
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, types.NewContainerError(path, types.ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return nil, types.NewContainerError(path, types.ErrAccessDenied)
	case err != nil:
		return nil, types.NewContainerError(path, err)
	case info.IsDir():
		return nil, types.NewContainerError(path, fmt.Errorf("path is a directory: %w", types.ErrInvalidFormat))
	}

	binary := cfg.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, types.NewContainerError(path, fmt.Errorf("container reader binary %q not found: %w", binary, err))
	}

	timeout := cfg.CommandTimeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	header, err := runCommand(ctx, timeout, binary, "info", "--header", path)
	if err != nil {
		return nil, types.NewContainerError(path, err)
	}

	imageCount, bootIndex := parseHeader(string(header))

	xmlData, err := runCommand(ctx, timeout, binary, "info", "--xml", path)
	if err != nil {
		return nil, types.NewContainerError(path, err)
	}

	images, err := parseDocument(xmlData)
	if err != nil {
		return nil, types.NewContainerError(path, err)
	}

	if imageCount == 0 {
		imageCount = len(images)
	}

	return &Reader{
		path:           path,
		containerBytes: info.Size(),
		imageCount:     imageCount,
		bootIndex:      bootIndex,
		images:         images,
	}, nil
}

// runCommand executes one wimlib-imagex invocation under a timeout, mapping
// tool failures onto the invalid-format class (wimlib rejects files that are
// not well-formed containers).
func runCommand(ctx context.Context, timeout time.Duration, binary string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%s %s failed: %s: %w", binary, args[0], detail, types.ErrInvalidFormat)
	}
	return stdout.Bytes(), nil
}

// parseHeader extracts the image count and boot index from wimlib-imagex
// header output ("Image Count:" / "Boot Index:" lines). Missing lines leave
// the zero values; the XML document supplies the image count in that case.
func parseHeader(output string) (imageCount, bootIndex int) {
	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Image Count":
			imageCount = n
		case "Boot Index":
			bootIndex = n
		}
	}
	return imageCount, bootIndex
}

// Path returns the container file path; it identifies the container for
// cache scoping.
func (r *Reader) Path() string {
	return r.path
}

// ImageCount returns the number of images in the container.
func (r *Reader) ImageCount() int {
	return r.imageCount
}

// BootIndex returns the 1-based bootable image index, or 0 when none is set.
func (r *Reader) BootIndex() int {
	return r.bootIndex
}

// ImageName returns the image's NAME property, or "".
func (r *Reader) ImageName(imageIndex int) string {
	if entry, ok := r.images[imageIndex]; ok {
		return entry.name
	}
	return ""
}

// ImageDescription returns the image's DESCRIPTION property, or "".
func (r *Reader) ImageDescription(imageIndex int) string {
	if entry, ok := r.images[imageIndex]; ok {
		return entry.description
	}
	return ""
}

// Property looks up a flattened property path for an image. Absent paths
// yield ("", false), never an error.
func (r *Reader) Property(imageIndex int, path string) (string, bool) {
	entry, ok := r.images[imageIndex]
	if !ok {
		return "", false
	}
	value, ok := entry.properties[path]
	return value, ok
}

// RawXML returns the raw inner XML of the image's IMAGE element.
func (r *Reader) RawXML(imageIndex int) (string, bool) {
	entry, ok := r.images[imageIndex]
	if !ok || entry.rawXML == "" {
		return "", false
	}
	return entry.rawXML, true
}

// ContainerBytes returns the container file size in bytes.
func (r *Reader) ContainerBytes() int64 {
	return r.containerBytes
}

// Close releases the handle. The adapter holds no OS resources between
// calls, so this only marks the reader unusable.
func (r *Reader) Close() error {
	r.images = nil
	return nil
}
