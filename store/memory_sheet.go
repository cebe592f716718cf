package store

import "sync"

// MemorySheet is an in-memory substrate used by tests and local runs without
// a database.
type MemorySheet struct {
	mu      sync.Mutex
	headers map[string][]string
	rows    map[string][]Row
}

func NewMemorySheet() *MemorySheet {
	return &MemorySheet{
		headers: make(map[string][]string),
		rows:    make(map[string][]Row),
	}
}

func (m *MemorySheet) Define(name string, headers []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.headers[name]; !ok {
		m.headers[name] = append([]string(nil), headers...)
	}
	return nil
}

func (m *MemorySheet) ListRows(name string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.headers[name]; !ok {
		return nil, ErrSheetMissing
	}
	out := make([]Row, len(m.rows[name]))
	for i, row := range m.rows[name] {
		out[i] = append(Row(nil), row...)
	}
	return out, nil
}

func (m *MemorySheet) AppendRow(name string, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.headers[name]; !ok {
		return ErrSheetMissing
	}
	m.rows[name] = append(m.rows[name], append(Row(nil), row...))
	return nil
}

func (m *MemorySheet) WriteRow(name string, index int, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.rows[name]
	if !ok || index < 0 || index >= len(rows) {
		if _, defined := m.headers[name]; !defined {
			return ErrSheetMissing
		}
		return ErrRowOutOfRange
	}
	rows[index] = append(Row(nil), row...)
	return nil
}

func (m *MemorySheet) DeleteRow(name string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.rows[name]
	if !ok || index < 0 || index >= len(rows) {
		if _, defined := m.headers[name]; !defined {
			return ErrSheetMissing
		}
		return ErrRowOutOfRange
	}
	m.rows[name] = append(rows[:index], rows[index+1:]...)
	return nil
}
