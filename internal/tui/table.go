// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/pass-the-salt/internal/pts"
)

var secretHeaders = []string{"LABEL", "KIND", "MODIFIED", "SALT"}

// RenderSecrets renders rows as a bordered table. Rows without a salt leave
// the last column empty. An empty listing renders as an empty string.
func RenderSecrets(rows []pts.DisplayRow) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(secretHeaders...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range rows {
		cols := r.Columns()
		for len(cols) < len(secretHeaders) {
			cols = append(cols, "")
		}
		t.Row(cols...)
	}

	return t.String()
}
