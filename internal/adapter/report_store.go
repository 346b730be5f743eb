package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	m "github.com/resew-dev/resew/internal/model"
)

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	Save(dir m.Path, report m.RunReport) error
	Latest(dir m.Path) (m.RunReport, error)
}

// LocalReportStore keeps one YAML file per run in the reports directory,
// named by the run timestamp so lexical order is chronological order.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// Save writes report into dir, creating the directory if needed.
func (rs *LocalReportStore) Save(dir m.Path, report m.RunReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	name := report.CreatedAt.UTC().Format("20060102T150405.000000000") + ".yaml"

	if err := os.WriteFile(filepath.Join(string(dir), name), data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// Latest loads the most recent report from dir.
func (rs *LocalReportStore) Latest(dir m.Path) (m.RunReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read reports dir: %w", err)
	}

	var names []string

	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return m.RunReport{}, fmt.Errorf("no reports found in %s", dir)
	}

	sort.Strings(names)

	data, err := os.ReadFile(filepath.Join(string(dir), names[len(names)-1]))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("parse report: %w", err)
	}

	return report, nil
}
