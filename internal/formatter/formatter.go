// package formatter renders submission history for the terminal and for export
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tagmix/internal/models"
	"gopkg.in/yaml.v3"
)

// Format names accepted by [Render].
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

const timeLayout = "2006-01-02 15:04"

// Render dispatches to the exporter for format.
func Render(format string, submissions []*models.Submission) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return ExportToText(submissions)
	case FormatMarkdown, "md":
		return ExportToMarkdown(submissions)
	case FormatCSV:
		return ExportToCSV(submissions)
	case FormatJSON:
		return ExportToJSON(submissions)
	case FormatYAML, "yml":
		return ExportToYAML(submissions)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// ExportToCSV writes one row per submission with columns: ID, Sequence, Playlist, Hashtag, State, Added, Skipped, URL, Error, Created
func ExportToCSV(submissions []*models.Submission) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Sequence", "Playlist", "Hashtag", "State", "Added", "Skipped", "URL", "Error", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range submissions {
		record := []string{
			s.ID,
			strconv.Itoa(s.Sequence),
			s.PlaylistName,
			s.Hashtag,
			s.State.String(),
			s.AddedCount.String(),
			s.SkippedCount.String(),
			s.PlaylistURL,
			s.ErrorMessage,
			s.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a table of submissions, linking playlists that were created.
func ExportToMarkdown(submissions []*models.Submission) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Submission History\n\n")
	if len(submissions) == 0 {
		buf.WriteString("_No submissions yet._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Playlist | Hashtag | Result | Created |\n")
	buf.WriteString("|---|----------|---------|--------|---------|\n")

	for _, s := range submissions {
		name := escapeCell(s.PlaylistName)
		if s.PlaylistURL != "" {
			name = fmt.Sprintf("[%s](%s)", name, s.PlaylistURL)
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			s.Sequence, name, escapeCell(s.Hashtag), escapeCell(Outcome(s)), s.CreatedAt.Local().Format(timeLayout)))
	}

	return buf.Bytes(), nil
}

// ExportToText renders one line per submission.
func ExportToText(submissions []*models.Submission) ([]byte, error) {
	var buf bytes.Buffer

	if len(submissions) == 0 {
		buf.WriteString("No submissions yet.\n")
		return buf.Bytes(), nil
	}

	for _, s := range submissions {
		buf.WriteString(fmt.Sprintf("#%d %s  %s (#%s)  %s\n",
			s.Sequence, s.CreatedAt.Local().Format(timeLayout), s.PlaylistName, strings.TrimPrefix(s.Hashtag, "#"), Outcome(s)))
		if s.PlaylistURL != "" {
			buf.WriteString(fmt.Sprintf("    %s\n", s.PlaylistURL))
		}
	}

	return buf.Bytes(), nil
}

type submissionRecord struct {
	ID           string       `json:"id" yaml:"id"`
	Sequence     int          `json:"sequence" yaml:"sequence"`
	PlaylistName string       `json:"playlistName" yaml:"playlist_name"`
	Hashtag      string       `json:"hashtag" yaml:"hashtag"`
	State        string       `json:"state" yaml:"state"`
	PlaylistID   string       `json:"playlistId,omitempty" yaml:"playlist_id,omitempty"`
	PlaylistURL  string       `json:"playlistUrl,omitempty" yaml:"playlist_url,omitempty"`
	AddedCount   models.Count `json:"addedCount" yaml:"added_count"`
	SkippedCount models.Count `json:"skippedCount" yaml:"skipped_count"`
	Error        string       `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" yaml:"created_at"`
}

func records(submissions []*models.Submission) []submissionRecord {
	out := make([]submissionRecord, 0, len(submissions))
	for _, s := range submissions {
		out = append(out, submissionRecord{
			ID:           s.ID,
			Sequence:     s.Sequence,
			PlaylistName: s.PlaylistName,
			Hashtag:      s.Hashtag,
			State:        s.State.String(),
			PlaylistID:   s.PlaylistID,
			PlaylistURL:  s.PlaylistURL,
			AddedCount:   s.AddedCount,
			SkippedCount: s.SkippedCount,
			Error:        s.ErrorMessage,
			CreatedAt:    s.CreatedAt,
		})
	}
	return out
}

// ExportToJSON renders submissions as an indented JSON array.
func ExportToJSON(submissions []*models.Submission) ([]byte, error) {
	data, err := json.MarshalIndent(records(submissions), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML renders submissions as a YAML sequence.
func ExportToYAML(submissions []*models.Submission) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records(submissions)); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Outcome summarizes a submission as "12 added, 3 skipped" or "failed: <message>".
func Outcome(s *models.Submission) string {
	if s.State == models.Success {
		return fmt.Sprintf("%s added, %s skipped", s.AddedCount, s.SkippedCount)
	}
	return "failed: " + s.ErrorMessage
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
