package host

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
)

// Info describes the local host.
type Info struct {
	Hostname string `json:"hostname,omitempty"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	Kernel   string `json:"kernel,omitempty"`
	// CPUs is the number of online processors reported by the shell, or by
	// the Go runtime when the shell is unavailable.
	CPUs int `json:"cpus"`
}

// Oversubscribed reports whether running capacity trials at once would
// exceed the number of processors.
func (i *Info) Oversubscribed(capacity int) bool {
	return i.CPUs > 0 && capacity > i.CPUs
}

// Service probes the host through a local shell session.
type Service struct {
	timeout time.Duration
}

// New creates a probe; timeout bounds each shell command.
func New(timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{timeout: timeout}
}

// Probe returns host details. The returned Info is never nil: fields the
// shell could not provide keep their runtime defaults and err explains why.
func (s *Service) Probe(ctx context.Context) (*Info, error) {
	info := &Info{OS: runtime.GOOS, Arch: runtime.GOARCH, CPUs: runtime.NumCPU()}
	service, err := gosh.New(ctx, local.New())
	if err != nil {
		return info, fmt.Errorf("failed to start shell: %w", err)
	}
	defer service.Close()

	if out, err := s.run(ctx, service, "nproc"); err == nil {
		if cpus, err := strconv.Atoi(out); err == nil && cpus > 0 {
			info.CPUs = cpus
		}
	}
	if out, err := s.run(ctx, service, "uname -sr"); err == nil {
		info.Kernel = out
	}
	if out, err := s.run(ctx, service, "hostname"); err == nil {
		info.Hostname = out
	}
	return info, nil
}

func (s *Service) run(ctx context.Context, service *gosh.Service, command string) (string, error) {
	stdout, status, err := service.Run(ctx, command, runner.WithTimeout(int(s.timeout.Milliseconds())))
	if err != nil {
		return "", err
	}
	if status != 0 {
		return "", fmt.Errorf("%s: exit status %d", command, status)
	}
	return lastLine(stdout), nil
}

func lastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
