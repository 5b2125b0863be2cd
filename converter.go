package sitechat

// Converter transforms HTML into another text representation.
type Converter interface {
	// Convert transforms HTML content into the target format.
	Convert(html string) (string, error)
}
