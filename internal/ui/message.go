package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tagmix/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSubmitDone MsgKind = iota
	MsgHistoryLoaded
	MsgNotice
)

// submitDoneMsg is the constructor for [MsgSubmitDone]
func submitDoneMsg(err error) Msg {
	return Msg{kind: MsgSubmitDone, data: err}
}

// historyLoadedMsg is the constructor for [MsgHistoryLoaded]
func historyLoadedMsg(submissions []*models.Submission, err error) Msg {
	return Msg{
		kind: MsgHistoryLoaded,
		data: struct {
			submissions []*models.Submission
			err         error
		}{submissions, err},
	}
}

// noticeMsg is the constructor for [MsgNotice]
func noticeMsg(text string) Msg {
	return Msg{kind: MsgNotice, data: text}
}
