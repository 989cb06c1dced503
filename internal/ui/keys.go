package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings shared by all screens. Bindings that
// don't apply to the current screen are simply not matched there.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Select   key.Binding
	Back     key.Binding

	NextField key.Binding

	Filter         key.Binding // free-text filter on list screens
	CycleStatus    key.Binding // cycle the status filter
	CyclePriority  key.Binding // cycle the priority filter
	Refresh        key.Binding

	Comment      key.Binding // ticket detail: write a comment
	ChangeStatus key.Binding // ticket detail: change the status
	Assign       key.Binding // ticket detail: assign a technician
	Download     key.Binding // ticket detail: save attachments to disk

	Edit       key.Binding // user management: edit the selected account
	Deactivate key.Binding // user management: deactivate the selected account

	Export key.Binding // reports: write the PDF

	Address key.Binding // login: edit the API address override

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in binding set. Vim-style navigation
// alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "subir"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "descer"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←/h", "página anterior"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("→/l", "próxima página"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "abrir"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "voltar"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "próximo campo"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filtrar"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	CyclePriority: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "urgência"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "atualizar"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comentar"),
	),
	ChangeStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "alterar status"),
	),
	Assign: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "atribuir"),
	),
	Download: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "baixar anexos"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "editar"),
	),
	Deactivate: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "desativar"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "exportar PDF"),
	),
	Address: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("C-e", "endereço da API"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "sair da conta"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "encerrar"),
	),
}
