package services

// MockRenderer records the documents it was asked to render.
type MockRenderer struct {
	Docs   []ReportDocument
	Result []byte
	Err    error
}

// NewMockRenderer creates a mock renderer returning placeholder bytes.
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{Result: []byte("%PDF-mock")}
}

// Render records the document and returns the configured result.
func (m *MockRenderer) Render(doc ReportDocument) ([]byte, error) {
	m.Docs = append(m.Docs, doc)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
