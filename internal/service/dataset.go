package service

import (
	"bufio"
	"net/url"
	"os"
	"strings"

	"phishhook/internal/utils"
)

// Dataset holds the two reputation sets used for exact-match lookups.
// It is built once at startup and never mutated afterwards, so concurrent
// reads from the engine need no locking.
type Dataset struct {
	legitimate map[string]struct{}
	phishing   map[string]struct{}
}

// NewDataset builds a dataset from in-memory entry lists. Phishing entries
// that parse as URLs also get their hostname inserted, so hostname-only
// matching works when the stored entry was a full URL.
func NewDataset(legitimate, phishing []string) *Dataset {
	d := &Dataset{
		legitimate: make(map[string]struct{}, len(legitimate)),
		phishing:   make(map[string]struct{}, len(phishing)),
	}
	for _, entry := range legitimate {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			d.legitimate[entry] = struct{}{}
		}
	}
	for _, entry := range phishing {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		d.phishing[entry] = struct{}{}
		if u, err := url.Parse(entry); err == nil && u.Hostname() != "" {
			d.phishing[strings.ToLower(u.Hostname())] = struct{}{}
		}
	}
	return d
}

// LoadDataset reads the two line-delimited source files. The legitimate source
// has no header; the phishing source may start with a lone "url" header line,
// which is skipped. A missing or unreadable source leaves that set empty and
// the engine running on heuristics alone.
func LoadDataset(legitimatePath, phishingPath string) *Dataset {
	d := NewDataset(readLines(legitimatePath, false), readLines(phishingPath, true))
	utils.Log.Info("reputation dataset loaded",
		utils.Field("legitimate", len(d.legitimate)),
		utils.Field("phishing", len(d.phishing)))
	return d
}

func readLines(path string, skipURLHeader bool) []string {
	f, err := os.Open(path)
	if err != nil {
		utils.Log.Warn("reputation source unavailable",
			utils.Field("path", path),
			utils.Field("error", err.Error()))
		return nil
	}
	defer func() {
		_ = f.Close()
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if skipURLHeader && strings.EqualFold(line, "url") {
				continue
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		utils.Log.Warn("error reading reputation source",
			utils.Field("path", path),
			utils.Field("error", err.Error()))
	}
	return lines
}

// IsLegitimate reports whether the hostname is a known-legitimate site.
func (d *Dataset) IsLegitimate(host string) bool {
	_, ok := d.legitimate[host]
	return ok
}

// IsPhishing reports whether the hostname or full URL is a known phishing entry.
func (d *Dataset) IsPhishing(s string) bool {
	_, ok := d.phishing[s]
	return ok
}

func (d *Dataset) LegitimateCount() int {
	return len(d.legitimate)
}

func (d *Dataset) PhishingCount() int {
	return len(d.phishing)
}
