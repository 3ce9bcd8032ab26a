package model

// RenderedContent is the output of the content rendering pipeline: sanitized
// HTML markup, or the escaped source text verbatim when PlainText is set.
// Recomputed on every render so edits are always reflected.
type RenderedContent struct {
	Html      string `json:"html"`
	PlainText bool   `json:"plainText"`
}
