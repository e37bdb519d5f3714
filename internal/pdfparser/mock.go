package pdfparser

// MockExtractor implements TextExtractor for testing purposes.
// It returns predefined text instead of reading the PDF.
type MockExtractor struct {
	Text  string
	Err   error
	Calls int
}

// NewMockExtractor creates a MockExtractor with the given text and error.
func NewMockExtractor(text string, err error) *MockExtractor {
	return &MockExtractor{Text: text, Err: err}
}

// ExtractText returns the predefined text or error.
func (m *MockExtractor) ExtractText(data []byte) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
