// Package session collects the records of one goosint run and persists
// them as a single JSON document.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dkoosis/goosint/internal/record"
)

// FileLayout names result files after the session start time.
const FileLayout = "investigation_20060102_150405.json"

// Info is the session_info block of the results file.
type Info struct {
	ID                  string
	StartTime           time.Time
	EndTime             time.Time
	ToolVersion         string
	TotalInvestigations int
}

// Session is the ordered list of records produced during one run.
// It is owned by a single driver and is not safe for concurrent use.
type Session struct {
	info    Info
	records []record.Record
}

// New starts a session at start.
func New(start time.Time, toolVersion string) *Session {
	return &Session{
		info: Info{
			ID:          uuid.NewString(),
			StartTime:   start,
			ToolVersion: toolVersion,
		},
		records: []record.Record{},
	}
}

// Append adds a finished record.
func (s *Session) Append(r record.Record) {
	s.records = append(s.records, r)
}

// Records returns the records in insertion order.
func (s *Session) Records() []record.Record {
	return s.records
}

// Info returns the current session_info values.
func (s *Session) Info() Info {
	return s.info
}

// Len returns the number of records appended so far.
func (s *Session) Len() int {
	return len(s.records)
}

// Counts tallies records by status.
func (s *Session) Counts() map[record.Status]int {
	counts := make(map[record.Status]int, len(record.Statuses))
	for _, r := range s.records {
		counts[r.Status]++
	}
	return counts
}

// Finish stamps the end time and the total count.
func (s *Session) Finish(end time.Time) {
	s.info.EndTime = end
	s.info.TotalInvestigations = len(s.records)
}

// FileName is the deterministic results file name for the session.
func (s *Session) FileName() string {
	return s.info.StartTime.Format(FileLayout)
}

type infoJSON struct {
	SessionID           string `json:"session_id"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time,omitempty"`
	ToolVersion         string `json:"tool_version"`
	TotalInvestigations int    `json:"total_investigations"`
}

type sessionJSON struct {
	SessionInfo    infoJSON        `json:"session_info"`
	Investigations []record.Record `json:"investigations"`
}

// MarshalJSON writes {session_info: {...}, investigations: [...]}.
func (s *Session) MarshalJSON() ([]byte, error) {
	info := infoJSON{
		SessionID:           s.info.ID,
		StartTime:           s.info.StartTime.Format(record.TimeLayout),
		ToolVersion:         s.info.ToolVersion,
		TotalInvestigations: s.info.TotalInvestigations,
	}
	if !s.info.EndTime.IsZero() {
		info.EndTime = s.info.EndTime.Format(record.TimeLayout)
	}
	return json.Marshal(sessionJSON{SessionInfo: info, Investigations: s.records})
}

// Encode renders the session as indented JSON without HTML escaping, so
// URLs in the raw output stay readable.
func (s *Session) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	return buf.Bytes(), nil
}

// Save finishes the session at end and writes it to path. The file is
// written to a temporary sibling first and renamed into place.
func (s *Session) Save(path string, end time.Time) error {
	s.Finish(end)

	data, err := s.Encode()
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", filepath.Base(tmp), err)
	}
	return nil
}
