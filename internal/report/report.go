package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type Signal struct {
	Code     string `json:"code"`
	File     string `json:"file"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type StageMetric struct {
	Name       string             `json:"name"`
	File       string             `json:"file,omitempty"`
	Status     string             `json:"status"`
	StartedAt  string             `json:"started_at"`
	FinishedAt string             `json:"finished_at"`
	DurationMS int64              `json:"duration_ms"`
	Counters   map[string]float64 `json:"counters,omitempty"`
	Error      string             `json:"error,omitempty"`
}

type FileMetric struct {
	Path        string `json:"path"`
	Headings    int    `json:"headings"`
	Entries     int    `json:"entries"`
	TitleLine   int    `json:"title_line"`
	AnchorLine  int    `json:"anchor_line"`
	RemovedFrom int    `json:"removed_from,omitempty"`
	RemovedTo   int    `json:"removed_to,omitempty"`
	Changed     bool   `json:"changed"`
	DryRun      bool   `json:"dry_run"`
	BackupPath  string `json:"backup_path,omitempty"`
}

type Summary struct {
	StageCount        int            `json:"stage_count"`
	FileCount         int            `json:"file_count"`
	ChangedFiles      int            `json:"changed_files"`
	FailedStages      int            `json:"failed_stages"`
	SignalsBySeverity map[string]int `json:"signals_by_severity"`
}

// RunReport collects stage timings and per-file results of one invocation.
// All methods are no-ops on a nil report.
type RunReport struct {
	Version     string        `json:"version"`
	Mode        string        `json:"mode"`
	GeneratedAt string        `json:"generated_at"`
	Stages      []StageMetric `json:"stages"`
	Files       []FileMetric  `json:"files,omitempty"`
	Signals     []Signal      `json:"signals,omitempty"`
	Summary     Summary       `json:"summary"`
}

type StageHandle struct {
	name    string
	file    string
	started time.Time
}

func New(mode string) *RunReport {
	return &RunReport{
		Version:     "v1",
		Mode:        mode,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Stages:      []StageMetric{},
		Files:       []FileMetric{},
		Signals:     []Signal{},
	}
}

func (r *RunReport) BeginStage(name, file string) StageHandle {
	return StageHandle{name: strings.TrimSpace(name), file: file, started: time.Now().UTC()}
}

func (r *RunReport) EndStage(h StageHandle, counters map[string]float64, err error) {
	if r == nil || h.name == "" {
		return
	}
	finished := time.Now().UTC()
	m := StageMetric{
		Name:       h.name,
		File:       h.file,
		Status:     "ok",
		StartedAt:  h.started.Format(time.RFC3339Nano),
		FinishedAt: finished.Format(time.RFC3339Nano),
		DurationMS: finished.Sub(h.started).Milliseconds(),
		Counters:   cleanCounters(counters),
	}
	if err != nil {
		m.Status = "error"
		m.Error = err.Error()
	}
	r.Stages = append(r.Stages, m)
}

func (r *RunReport) AddSignal(code, file, severity, message string) {
	if r == nil {
		return
	}
	s := Signal{
		Code:     strings.TrimSpace(code),
		File:     file,
		Severity: strings.ToLower(strings.TrimSpace(severity)),
		Message:  strings.TrimSpace(message),
	}
	if s.Code == "" || s.Severity == "" || s.Message == "" {
		return
	}
	r.Signals = append(r.Signals, s)
}

func (r *RunReport) AddFile(m FileMetric) {
	if r == nil || strings.TrimSpace(m.Path) == "" {
		return
	}
	r.Files = append(r.Files, m)
}

func (r *RunReport) Finalize() {
	if r == nil {
		return
	}
	r.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	severityCount := map[string]int{
		"critical": 0,
		"warning":  0,
		"info":     0,
	}
	sort.SliceStable(r.Signals, func(i, j int) bool {
		return signalPriority(r.Signals[i].Severity) > signalPriority(r.Signals[j].Severity)
	})
	for _, s := range r.Signals {
		severityCount[s.Severity]++
	}

	failed := 0
	for _, st := range r.Stages {
		if st.Status != "ok" {
			failed++
		}
	}
	changed := 0
	for _, f := range r.Files {
		if f.Changed {
			changed++
		}
	}

	r.Summary = Summary{
		StageCount:        len(r.Stages),
		FileCount:         len(r.Files),
		ChangedFiles:      changed,
		FailedStages:      failed,
		SignalsBySeverity: severityCount,
	}
}

// Save finalizes the report and writes it as indented JSON.
func (r *RunReport) Save(path string) error {
	if r == nil {
		return nil
	}
	r.Finalize()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func cleanCounters(raw map[string]float64) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		out[key] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func signalPriority(severity string) int {
	switch severity {
	case "critical":
		return 3
	case "warning":
		return 2
	default:
		return 1
	}
}
