package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	selectorTitleConstant           = "Select branches to delete"
	selectorHelpConstant            = "space: toggle • a: toggle all • enter: confirm • q/esc: cancel"
	selectorCheckboxCheckedConstant = "[x]"
	selectorCheckboxEmptyConstant   = "[ ]"
	selectorCursorConstant          = "> "
	selectorNoCursorConstant        = "  "
	selectorRunErrorTemplate        = "branch selection failed: %w"
)

var (
	selectorTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectorSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selectorCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectorHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type selectorKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func defaultSelectorKeyMap() selectorKeyMap {
	return selectorKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k")),
		Down:      key.NewBinding(key.WithKeys("down", "j")),
		Toggle:    key.NewBinding(key.WithKeys(" ")),
		ToggleAll: key.NewBinding(key.WithKeys("a")),
		Confirm:   key.NewBinding(key.WithKeys("enter")),
		Cancel:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

type selectionModel struct {
	candidates []string
	selected   map[int]struct{}
	cursor     int
	confirmed  bool
	cancelled  bool
	keys       selectorKeyMap
}

func newSelectionModel(candidates []string) selectionModel {
	return selectionModel{
		candidates: candidates,
		selected:   make(map[int]struct{}),
		keys:       defaultSelectorKeyMap(),
	}
}

func (model selectionModel) Init() tea.Cmd {
	return nil
}

func (model selectionModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKeyMessage := message.(tea.KeyMsg)
	if !isKeyMessage {
		return model, nil
	}

	switch {
	case key.Matches(keyMessage, model.keys.Cancel):
		model.cancelled = true
		return model, tea.Quit
	case key.Matches(keyMessage, model.keys.Confirm):
		model.confirmed = true
		return model, tea.Quit
	case key.Matches(keyMessage, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(keyMessage, model.keys.Down):
		if model.cursor < len(model.candidates)-1 {
			model.cursor++
		}
	case key.Matches(keyMessage, model.keys.Toggle):
		if _, isSelected := model.selected[model.cursor]; isSelected {
			delete(model.selected, model.cursor)
		} else {
			model.selected[model.cursor] = struct{}{}
		}
	case key.Matches(keyMessage, model.keys.ToggleAll):
		if len(model.selected) == len(model.candidates) {
			model.selected = make(map[int]struct{})
		} else {
			for candidateIndex := range model.candidates {
				model.selected[candidateIndex] = struct{}{}
			}
		}
	}

	return model, nil
}

func (model selectionModel) View() string {
	var viewBuilder strings.Builder
	viewBuilder.WriteString(selectorTitleStyle.Render(selectorTitleConstant))
	viewBuilder.WriteString("\n\n")

	for candidateIndex, candidateName := range model.candidates {
		cursorMarker := selectorNoCursorConstant
		if candidateIndex == model.cursor {
			cursorMarker = selectorCursorStyle.Render(selectorCursorConstant)
		}

		checkbox := selectorCheckboxEmptyConstant
		renderedName := candidateName
		if _, isSelected := model.selected[candidateIndex]; isSelected {
			checkbox = selectorCheckboxCheckedConstant
			renderedName = selectorSelectedStyle.Render(candidateName)
		}

		viewBuilder.WriteString(fmt.Sprintf("%s%s %s\n", cursorMarker, checkbox, renderedName))
	}

	viewBuilder.WriteString("\n")
	viewBuilder.WriteString(selectorHelpStyle.Render(selectorHelpConstant))
	viewBuilder.WriteString("\n")
	return viewBuilder.String()
}

func (model selectionModel) selectedBranches() []string {
	selectedNames := make([]string, 0, len(model.selected))
	for candidateIndex, candidateName := range model.candidates {
		if _, isSelected := model.selected[candidateIndex]; isSelected {
			selectedNames = append(selectedNames, candidateName)
		}
	}
	return selectedNames
}

// BranchMultiSelector presents candidate branches as an interactive checklist.
type BranchMultiSelector struct{}

// NewBranchMultiSelector constructs the default terminal-backed selector.
func NewBranchMultiSelector() *BranchMultiSelector {
	return &BranchMultiSelector{}
}

// SelectBranches blocks until the user confirms or cancels the checklist and
// returns the chosen subset in candidate order. Cancellation yields an empty
// selection, not an error.
func (selector *BranchMultiSelector) SelectBranches(executionContext context.Context, candidateBranches []string) ([]string, error) {
	if len(candidateBranches) == 0 {
		return nil, nil
	}

	program := tea.NewProgram(newSelectionModel(candidateBranches), tea.WithContext(executionContext))
	finalModel, runError := program.Run()
	if runError != nil {
		return nil, fmt.Errorf(selectorRunErrorTemplate, runError)
	}

	resultModel, isSelectionModel := finalModel.(selectionModel)
	if !isSelectionModel || resultModel.cancelled {
		return nil, nil
	}
	return resultModel.selectedBranches(), nil
}
