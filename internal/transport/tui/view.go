package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/internal/service/session"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Connecting to the brain..."
	}

	if m.modalURL != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}

	body := m.viewport.View()
	if m.memoriesOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderMemories())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		inputStyle.Width(max(m.width-2, 10)).Render(m.input.View()),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := headerStyle.Render("🧠 Brain")

	var status string
	if m.stats == nil {
		status = idleStyle.Render("● offline")
	} else {
		s := m.stats
		status = activeStyle.Render("● active") + "  " + mutedStyle.Render(fmt.Sprintf(
			"experiences %d · curiosity %.2f · stm %d · ltm %d · concepts %d",
			s.NeuralNetwork.ExperienceCounter,
			s.NeuralNetwork.CuriosityFactor,
			s.Memory.STMSize,
			s.Memory.LTMSize,
			s.Learning.ConceptsCount,
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status) + "\n" +
		mutedStyle.Render(strings.Repeat("─", max(m.width, 1)))
}

func (m Model) renderFooter() string {
	if m.busy > 0 {
		return m.spinner.View() + " Working..."
	}
	help := "enter send · ctrl+y 👍 · ctrl+n 👎 · ctrl+g visualize · ctrl+s save · esc close · ctrl+c quit"
	return mutedStyle.Render(help)
}

func (m Model) renderHistory() string {
	var sb strings.Builder
	latest := m.latestBrainIndex()

	for i, e := range m.history {
		switch e.kind {
		case entryUser:
			sb.WriteString(userStyle.Render("You") + "\n")
			sb.WriteString(e.text + "\n\n")
		case entryBrain:
			sb.WriteString(brainStyle.Render("Brain") + "\n")
			sb.WriteString(m.safeRenderMarkdown(e.text))
			sb.WriteString(renderRating(e, i == latest) + "\n\n")
		case entrySystem:
			sb.WriteString(systemStyle.Render(e.text) + "\n\n")
		case entryCommand:
			sb.WriteString(m.safeRenderMarkdown(e.text) + "\n")
		}
	}
	return sb.String()
}

func (m Model) latestBrainIndex() int {
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].kind == entryBrain {
			return i
		}
	}
	return -1
}

func renderRating(e entry, latest bool) string {
	id := mutedStyle.Render("#" + e.id)
	switch {
	case e.rating > 0:
		return id + "  " + goodStyle.Render("👍 rated good")
	case e.rating < 0:
		return id + "  " + badStyle.Render("👎 rated bad")
	case latest:
		return id + "  " + mutedStyle.Render("ctrl+y 👍  ctrl+n 👎")
	default:
		return id + "  " + mutedStyle.Render("/good "+e.id+"  /bad "+e.id)
	}
}

// safeRenderMarkdown falls back to the raw text when glamour fails.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content + "\n"
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content + "\n"
}

func (m Model) renderMemories() string {
	width := max(m.width-m.chatWidth()-2, 10)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Memories") + mutedStyle.Render("  (esc to close)") + "\n\n")
	if len(m.memories) == 0 {
		sb.WriteString(mutedStyle.Render(session.MsgNoMemories) + "\n")
	}
	for _, mem := range m.memories {
		sb.WriteString(renderMemory(mem, width) + "\n\n")
	}

	return panelStyle.
		Width(width).
		MaxHeight(m.viewport.Height).
		Render(sb.String())
}

func renderMemory(mem core.RenderedMemory, width int) string {
	content := lipgloss.NewStyle().Width(width - 1).Render(mem.Content)
	meta := mutedStyle.Render(fmt.Sprintf("importance %s · %s", mem.Importance, mem.CreatedAt))
	return content + "\n" + meta
}

func (m Model) renderModal() string {
	width := min(max(m.width-4, 20), 72)
	body := headerStyle.Render("Memory network") + "\n\n" +
		"Open the rendering in your browser:\n" +
		lipgloss.NewStyle().Underline(true).Render(m.modalURL) + "\n\n" +
		mutedStyle.Render("x / c / esc or click outside to close")
	return modalStyle.Width(width).Render(body)
}

// insideModal reports whether a cell falls on the centered modal box.
func (m Model) insideModal(x, y int) bool {
	box := m.renderModal()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	left := (m.width - w) / 2
	top := (m.height - h) / 2
	return x >= left && x < left+w && y >= top && y < top+h
}
