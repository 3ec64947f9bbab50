package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tagmix/internal/formatter"
	"github.com/desertthunder/tagmix/internal/models"
)

var _ list.DefaultItem = submissionItem{}

// submissionItem wraps [models.Submission] to implement [list.Item].
type submissionItem struct {
	submission *models.Submission
}

func (i submissionItem) FilterValue() string {
	return i.submission.PlaylistName + " " + i.submission.Hashtag
}
func (i submissionItem) Title() string {
	return fmt.Sprintf("%s • #%s", i.submission.PlaylistName, models.NormalizeHashtag(i.submission.Hashtag))
}
func (i submissionItem) Description() string {
	desc := formatter.Outcome(i.submission)
	if !i.submission.CreatedAt.IsZero() {
		desc = fmt.Sprintf("%s • %s", i.submission.CreatedAt.Local().Format("Jan 2 15:04"), desc)
	}
	return desc
}
