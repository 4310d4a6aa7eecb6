package nuclei

import "strings"

// ScanRequest describes one nuclei invocation. Exactly one of Target and
// TargetList is used; Target wins when both are set.
type ScanRequest struct {
	Templates  []string
	Target     string // -u
	TargetList string // -l, newline-delimited URLs
	Output     string // -o
	Proxy      string // -p, omitted when empty
}

// Validate rejects requests that must not reach the subprocess.
func (r ScanRequest) Validate() error {
	if len(r.Templates) == 0 {
		return ErrNoTemplates
	}
	if strings.TrimSpace(r.Target) == "" && strings.TrimSpace(r.TargetList) == "" {
		return ErrNoTarget
	}
	return nil
}

// Args assembles the nuclei argument vector:
// -o out (-u target | -l file) -t t1 -t t2 ... [-p proxy]
func (r ScanRequest) Args() []string {
	args := make([]string, 0, 6+2*len(r.Templates))
	if r.Output != "" {
		args = append(args, "-o", r.Output)
	}
	if t := strings.TrimSpace(r.Target); t != "" {
		args = append(args, "-u", t)
	} else if l := strings.TrimSpace(r.TargetList); l != "" {
		args = append(args, "-l", l)
	}
	for _, t := range r.Templates {
		args = append(args, "-t", t)
	}
	if p := strings.TrimSpace(r.Proxy); p != "" {
		args = append(args, "-p", p)
	}
	return args
}

// CommandLine renders the invocation for display.
func (r ScanRequest) CommandLine(binary string) string {
	return strings.Join(append([]string{binary}, r.Args()...), " ")
}
