package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned by RunLoader when the user hits ctrl+c.
var ErrCancelled = errors.New("cancelled")

type loadDoneMsg[T any] struct {
	result T
	err    error
}

type loaderModel[T any] struct {
	label   string
	fetchFn func(ctx context.Context) (T, error)
	timeout time.Duration
	spinner spinner.Model
	result  T
	err     error
	done    bool
}

func newLoaderModel[T any](label string, timeout time.Duration, fn func(ctx context.Context) (T, error)) loaderModel[T] {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("202"))
	return loaderModel[T]{label: label, fetchFn: fn, timeout: timeout, spinner: s}
}

func (m loaderModel[T]) Init() tea.Cmd {
	return tea.Batch(m.doFetch(), m.spinner.Tick)
}

func (m loaderModel[T]) doFetch() tea.Cmd {
	fetchFn, timeout := m.fetchFn, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := fetchFn(ctx)
		return loadDoneMsg[T]{result: res, err: err}
	}
}

func (m loaderModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDoneMsg[T]:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m loaderModel[T]) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s...\n", m.spinner.View(), m.label)
}

// RunLoader shows a spinner labelled label while fn runs. It renders inline
// (no alt screen). timeout bounds fn.
func RunLoader[T any](label string, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	p := tea.NewProgram(newLoaderModel(label, timeout, fn))
	result, err := p.Run()
	if err != nil {
		var zero T
		return zero, err
	}
	final := result.(loaderModel[T])
	return final.result, final.err
}
