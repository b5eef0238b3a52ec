package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockCommandRunner returns scripted output for listing commands.
type MockCommandRunner struct {
	mu sync.Mutex

	// Responses maps "command arg1 arg2" to its response. A key also matches
	// any command line it is a prefix of.
	Responses map[string]MockResponse

	// DefaultResponse is used when nothing in Responses matches.
	DefaultResponse *MockResponse

	// RecordedCalls stores every Execute call in order.
	RecordedCalls []RecordedCall

	// StrictMode makes unmatched commands fail instead of returning empty output.
	StrictMode bool
}

// MockResponse is the scripted result of one command.
type MockResponse struct {
	Output []byte
	Err    error
}

// RecordedCall stores one Execute invocation.
type RecordedCall struct {
	Command string
	Args    []string
}

// NewMockCommandRunner creates a runner with no responses.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Responses: make(map[string]MockResponse),
	}
}

// Execute returns the scripted response for name and args.
func (m *MockCommandRunner) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordedCalls = append(m.RecordedCalls, RecordedCall{Command: name, Args: args})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := buildKey(name, args)
	if resp, ok := m.Responses[key]; ok {
		return resp.Output, resp.Err
	}
	for pattern, resp := range m.Responses {
		if strings.HasPrefix(key, pattern) {
			return resp.Output, resp.Err
		}
	}

	if m.DefaultResponse != nil {
		return m.DefaultResponse.Output, m.DefaultResponse.Err
	}
	if m.StrictMode {
		return nil, fmt.Errorf("mock: no response configured for command: %s", key)
	}
	return []byte{}, nil
}

// AddOutput scripts a successful command with the given output.
func (m *MockCommandRunner) AddOutput(command, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[command] = MockResponse{Output: []byte(output)}
}

// AddError scripts a failing command.
func (m *MockCommandRunner) AddError(command string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[command] = MockResponse{Err: err}
}

// CallCount returns the number of Execute calls so far.
func (m *MockCommandRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RecordedCalls)
}

func buildKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
