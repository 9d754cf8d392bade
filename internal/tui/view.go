// internal/tui/view.go
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"prodview/internal/catalog"
	"prodview/internal/remote"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleErr   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleRowSel = lipgloss.NewStyle().Reverse(true)
	stylePage   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

const (
	colID    = 6
	colTitle = 38
	colPrice = 10
	colCat   = 14
)

func (m Model) View() string {
	if m.loadErr != "" {
		return styleModal.Render(
			styleErr.Render("could not load the catalog") + "\n\n" +
				m.loadErr + "\n\n" +
				styleDim.Render("r: reload   q: quit"))
	}
	if !m.loaded {
		return styleDim.Render("loading products…")
	}

	switch m.mode {
	case modeDetail:
		return m.viewDetail()
	case modeEdit:
		return m.viewForm(m.edit, m.ctrl.Pending(remote.ActionUpdate))
	case modeCreate:
		return m.viewForm(m.create, m.ctrl.Pending(remote.ActionCreate))
	}
	return m.viewBrowse()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("prodview  ·  product catalog"))
	b.WriteString("\n\n")

	if m.searchFocused {
		b.WriteString(m.search.View())
	} else if term := m.search.Value(); term != "" {
		b.WriteString(styleDim.Render("filter: ") + term)
	} else {
		b.WriteString(styleDim.Render("/ to search"))
	}
	b.WriteString("\n\n")

	page := m.store.Page()
	if len(page) == 0 {
		// Table and pagination hide together on an empty view.
		b.WriteString(styleDim.Render("no matching products"))
		b.WriteString("\n")
	} else {
		b.WriteString(styleHeader.Render(tableRow("ID", "TITLE"+sortMark(m, catalog.SortTitle), "PRICE"+sortMark(m, catalog.SortPrice), "CATEGORY")))
		b.WriteString("\n")
		for i, p := range page {
			row := tableRow(
				strconv.FormatInt(p.ID, 10),
				p.Title,
				fmt.Sprintf("$%.2f", p.Price),
				p.CategoryName(),
			)
			if i == m.cursor {
				row = styleRowSel.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.viewPagination())
		b.WriteString("\n")
	}

	if m.banner.text != "" {
		b.WriteString("\n")
		if m.banner.isErr {
			b.WriteString(styleErr.Render(m.banner.text))
		} else {
			b.WriteString(styleOK.Render("✓ " + m.banner.text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render("←/→ page   t/p sort   enter view   n new   e export   q quit"))
	return b.String()
}

func (m Model) viewPagination() string {
	meta := m.store.Meta()
	var parts []string
	for _, n := range m.store.PageNumbers() {
		switch {
		case n == catalog.Ellipsis:
			parts = append(parts, styleDim.Render("…"))
		case n == meta.Page:
			parts = append(parts, stylePage.Render("["+strconv.Itoa(n)+"]"))
		default:
			parts = append(parts, strconv.Itoa(n))
		}
	}
	info := fmt.Sprintf("page %d/%d · %d items · %d per page",
		meta.Page, meta.TotalPages, meta.TotalItems, m.store.PageState().PerPage)
	return strings.Join(parts, " ") + "   " + styleDim.Render(info)
}

func (m Model) viewDetail() string {
	p, ok := m.store.Find(m.detailID)
	if !ok {
		return styleErr.Render("product is gone") + "\n" + styleDim.Render("esc: back")
	}
	var b strings.Builder
	b.WriteString(styleTitle.Render(p.Title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("ID          %d\n", p.ID))
	b.WriteString(fmt.Sprintf("Price       $%.2f\n", p.Price))
	b.WriteString(fmt.Sprintf("Category    %s\n", p.CategoryName()))
	if img := p.FirstImage(); img != "" {
		b.WriteString(fmt.Sprintf("Image       %s\n", img))
	}
	desc := p.Description
	if desc == "" {
		desc = styleDim.Render("no description")
	}
	b.WriteString("\n" + desc + "\n")

	if m.banner.text != "" && !m.banner.isErr {
		b.WriteString("\n" + styleOK.Render("✓ "+m.banner.text) + "\n")
	}
	b.WriteString("\n" + styleDim.Render("e: edit   esc: back"))
	return styleModal.Render(b.String())
}

func (m Model) viewForm(f form, pending bool) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(f.caption))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := fmt.Sprintf("%-12s", f.labels[i])
		if i == f.focus {
			b.WriteString(styleTitle.Render(label))
		} else {
			b.WriteString(styleDim.Render(label))
		}
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n" + styleErr.Render(f.errMsg) + "\n")
	}
	if pending {
		b.WriteString("\n" + styleDim.Render("saving…") + "\n")
	}
	b.WriteString("\n" + styleDim.Render("tab: next field   enter: save   esc: cancel"))
	return styleModal.Render(b.String())
}

func tableRow(id, title, price, cat string) string {
	return pad(id, colID) + pad(title, colTitle) + pad(price, colPrice) + pad(cat, colCat)
}

func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w-2 {
		return string(r[:w-3]) + "… "
	}
	return s + strings.Repeat(" ", w-len(r))
}

func sortMark(m Model, f catalog.SortField) string {
	q := m.store.Query()
	if q.SortField != f {
		return ""
	}
	if q.SortDir == catalog.Asc {
		return " ↑"
	}
	return " ↓"
}
