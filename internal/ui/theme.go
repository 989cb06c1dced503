package ui

import (
	"github.com/charmbracelet/lipgloss"

	"helpdesk_client/internal/listing"
	"helpdesk_client/internal/models"
)

// Theme defines the color palette for the terminal screens. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Accent     lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Status colors.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color
	StatusClosed     lipgloss.Color

	// Priority colors.
	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
	SuccessText      lipgloss.Color
}

// StatusColor returns the color for a ticket status. Matching is
// accent-insensitive and recognizes the legacy "em análise" label;
// unknown values render faint.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch listing.Fold(status) {
	case models.StatusOpen, "":
		return theme.StatusOpen
	case models.StatusInProgress, "em analise":
		return theme.StatusInProgress
	case models.StatusResolved:
		return theme.StatusResolved
	case models.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// PriorityColor returns the color for a ticket priority. The legacy
// "crítica" label renders as high.
func (theme Theme) PriorityColor(priority string) lipgloss.Color {
	switch listing.Fold(priority) {
	case "baixa":
		return theme.PriorityLow
	case "alta", "critica":
		return theme.PriorityHigh
	default:
		return theme.PriorityMedium
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),
	Accent:     lipgloss.Color("42"), // the product's teal

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusOpen:       lipgloss.Color("214"), // amber
	StatusInProgress: lipgloss.Color("75"),  // blue
	StatusResolved:   lipgloss.Color("114"), // green
	StatusClosed:     lipgloss.Color("245"), // gray

	PriorityLow:    lipgloss.Color("245"),
	PriorityMedium: lipgloss.Color("220"),
	PriorityHigh:   lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("196"),
	SuccessText:      lipgloss.Color("114"),
}
