package ui

import "helpdesk_client/internal/models"

// Result messages for asynchronous gateway calls. Every load message
// carries the generation it was issued under; the Update loop discards
// results whose generation no longer matches the model's (the user
// navigated away or reloaded before the call finished).

type healthResultMsg struct {
	up bool
}

type loginResultMsg struct {
	user models.User
	err  error
}

type ticketsLoadedMsg struct {
	gen     uint64
	tickets []models.Ticket
	err     error
}

type ticketLoadedMsg struct {
	gen      uint64
	ticket   models.Ticket
	comments []models.Comment
	err      error
}

type commentPostedMsg struct {
	gen uint64
	err error
}

type ticketCreatedMsg struct {
	gen    uint64
	ticket models.Ticket
	err    error
}

type statusUpdatedMsg struct {
	gen uint64
	err error
}

type assignResultMsg struct {
	gen uint64
	err error
}

type attachmentsSavedMsg struct {
	dir   string
	count int
	err   error
}

type usersLoadedMsg struct {
	gen   uint64
	users []models.User
	err   error
}

type userSavedMsg struct {
	gen uint64
	err error
}

type reportLoadedMsg struct {
	gen    uint64
	report models.Report
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

type articlesLoadedMsg struct {
	gen      uint64
	articles []models.Article
	err      error
}

type articleLoadedMsg struct {
	gen     uint64
	article models.Article
	err     error
}
