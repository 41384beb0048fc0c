package validation

// FieldError describes one rejected argument field.
type FieldError struct {
	Field   string `json:"field"`   // JSON path, e.g. items[0].quantity
	Rule    string `json:"rule"`    // validator tag that failed
	Message string `json:"message"`
}
