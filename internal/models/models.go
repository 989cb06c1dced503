// Package models defines the entities exchanged with the helpdesk API
// and the role/capability tables that drive what each screen offers.
package models

// Ticket status labels as the API reports them. Matching elsewhere is
// case- and accent-insensitive, so these are reference labels only.
const (
	StatusOpen       = "aberto"
	StatusInProgress = "em andamento"
	StatusResolved   = "resolvido"
	StatusClosed     = "fechado"
)

// CategoryNameByID maps the API's numeric category ids to display
// names. Id 4 arrives on older tickets; reports fold it into hardware
// (see internal/report).
var CategoryNameByID = map[int]string{
	1: "hardware",
	2: "software",
	3: "rede",
	4: "impressora",
	5: "outros",
}

// CategoryIDByName maps the names offered on the new-ticket screen to
// the ids the API expects. Unknown names fall back to 5 (outros).
var CategoryIDByName = map[string]int{
	"hardware": 1,
	"software": 2,
	"rede":     3,
	"outros":   5,
}

// PriorityLabelByName maps lowercase urgency input to the exact labels
// the ticket-creation endpoint accepts.
var PriorityLabelByName = map[string]string{
	"baixa": "Baixa",
	"media": "Média",
	"média": "Média",
	"alta":  "Alta",
}

// User is an account on the helpdesk platform. Role is resolved once
// at login from ProfileID and never changes for the session.
type User struct {
	ID        string `json:"id"`
	FullName  string `json:"nomecompleto"`
	Email     string `json:"email"`
	ProfileID int    `json:"id_perfil"`
	Active    bool   `json:"ativo"`
	Role      Role   `json:"role"`
}

// Attachment is a file attached to a ticket. At least one of URL and
// Data is set: entries with neither are dropped during normalization
// and never reach the UI.
type Attachment struct {
	Name string `json:"nome"`
	URL  string `json:"url"`
	Data string `json:"dados"` // base64 file content, inline
}

// Ticket is a helpdesk call. Timestamps are kept as the ISO strings
// the API sends; screens format the date prefix only.
type Ticket struct {
	ID                  int64        `json:"id_chamado"`
	OwnerID             string       `json:"id_usuario"`
	Title               string       `json:"titulo"`
	Description         string       `json:"descricao"`
	Status              string       `json:"status"`
	Priority            string       `json:"prioridade"`
	CategoryID          int          `json:"id_categoria"`
	OpenedAt            string       `json:"data_abertura"`
	ClosedAt            string       `json:"data_fechamento"`
	SuggestedResolution string       `json:"resolucaoia_sugerida"`
	Attachments         []Attachment `json:"anexos"`
}

// CategoryName resolves the ticket's category display name.
func (t Ticket) CategoryName() string {
	if name, ok := CategoryNameByID[t.CategoryID]; ok {
		return name
	}
	return "outros"
}

// Comment is one interaction on a ticket. Screens render comments in
// ascending CreatedAt order.
type Comment struct {
	ID              int64  `json:"id_interacao"`
	TicketID        int64  `json:"id_chamado"`
	AuthorID        string `json:"id_usuario"`
	AuthorName      string `json:"nomecompleto"`
	AuthorProfileID int    `json:"id_perfil"`
	Text            string `json:"comentario"`
	CreatedAt       string `json:"data_hora"`
}

// Article is a knowledge-base entry. Keywords is a comma-separated
// string, kept as the API sends it.
type Article struct {
	ID         int64  `json:"id_artigo"`
	Title      string `json:"titulo"`
	Content    string `json:"conteudo"`
	CategoryID int    `json:"id_categoria"`
	Keywords   string `json:"palavraschave"`
	CreatedAt  string `json:"datacriacao"`
}

// ReportPeriod is the date range a managerial report covers.
type ReportPeriod struct {
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

// ReportMetrics are the aggregate counters of a managerial report.
type ReportMetrics struct {
	Total    int `json:"totalChamados"`
	Open     int `json:"totalAbertos"`
	Resolved int `json:"totalResolvidos"`
}

// CategoryCount is one row of the per-category breakdown as the API
// returns it: raw ids, not yet merged or named.
type CategoryCount struct {
	CategoryID int `json:"categoriaId"`
	Count      int `json:"quantidade"`
}

// Report is the managerial report payload.
type Report struct {
	Period     ReportPeriod    `json:"periodo"`
	Metrics    ReportMetrics   `json:"metricas"`
	ByCategory []CategoryCount `json:"porCategoria"`
}
