package dto

type QuoteOutput struct {
	Content string
	Author  string
	// Fallback is set when the quote came from the built-in list.
	Fallback bool
}
