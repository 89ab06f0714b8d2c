package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shariq818/latencymon/internal/runner"
)

// promptOptions collects a target list and tuning knobs interactively,
// mirroring the flags. Blank or unparsable answers keep the defaults.
// Returns false when no URLs were entered.
func promptOptions(in *bufio.Reader, out io.Writer, defaults runner.Options) (runner.Options, bool) {
	fmt.Fprint(out, "Enter URLs (comma separated, http/https optional): ")
	line := readLine(in)
	if line == "" {
		return defaults, false
	}

	opts := defaults
	opts.Targets = strings.Split(line, ",")

	fmt.Fprintf(out, "Samples per URL [%d]: ", defaults.Samples)
	opts.Samples = parseCount(readLine(in), defaults.Samples)

	fmt.Fprintf(out, "Timeout seconds [%g]: ", defaults.Timeout.Seconds())
	opts.Timeout = parseSeconds(readLine(in), defaults.Timeout)

	fmt.Fprintf(out, "Concurrency [%d]: ", defaults.Concurrency)
	opts.Concurrency = parseCount(readLine(in), defaults.Concurrency)

	fmt.Fprint(out, "Spoof User-Agent? [y/N]: ")
	if ans := strings.ToLower(readLine(in)); ans == "y" || ans == "yes" {
		opts.SpoofUserAgent = true
	}

	return opts, true
}

func readLine(in *bufio.Reader) string {
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func parseCount(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parseSeconds(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs * float64(time.Second))
}
