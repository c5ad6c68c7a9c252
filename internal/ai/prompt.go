package ai

import (
	"fmt"
	"strings"
)

const basePrompt = `You will receive one or more PDF documents containing formal information. Your task is to summarize and explain their content in clear, simple, human language.

Prioritize what is essential and practical, as if speaking to a busy person who has no time to read the whole document.

Avoid unnecessary jargon and answer concisely and understandably.

You must also answer specific questions about the content of the documents.

Characteristics of your answers:
- Clear, direct language
- Concise but complete summaries
- Explanations aimed at a busy reader
- Specific answers when asked about the documents
- If there are multiple documents, say which one you are talking about when relevant`

// endMarker closes every document block in the combined content. Counting it
// is how multiplicity is detected, so the wording here and in the session's
// combined-content builder must stay in sync.
const endMarker = "END OF DOCUMENT #"

// SystemPrompt composes the directive text sent on every turn. With no
// combined content it returns the base instruction verbatim; otherwise it
// wraps the full combined content, switching wording when more than one
// document block is present.
func SystemPrompt(combined string) string {
	if combined == "" {
		return basePrompt
	}

	if strings.Count(combined, endMarker) > 1 {
		return fmt.Sprintf(`%s

LOADED PDF DOCUMENTS:
========================
%s
========================

SPECIAL INSTRUCTIONS:
- You have access to MULTIPLE PDF documents
- Each document is clearly separated with its name and content
- You may reference information from any of the documents in your answers
- If a question refers to a specific document, say which one
- If the information spans several documents, you may combine it
- For general summaries, include relevant information from all documents

You can now answer questions about these documents or provide summaries on request.`, basePrompt, combined)
	}

	return fmt.Sprintf(`%s

LOADED PDF DOCUMENT:
=====================
%s
=====================

You can now answer questions about this document or provide a summary on request.`, basePrompt, combined)
}
