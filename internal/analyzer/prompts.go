package analyzer

import "fmt"

// Prompt templates for the structure-analysis conversation. The wording
// restates the global task in every window prompt: the external model keeps
// the document in context but drifts without the reminder.

// SystemInstruction frames the whole session.
const SystemInstruction = `You are given a technical specifications PDF document in the construction sector (a "samengevoegd lastenboek") that can be a concatenation of multiple different documents, each with their own internal page numbering.

The document contains numbered chapters in two formats:
1. Main chapters: formatted as "XX. TITLE" (e.g., "00. ALGEMENE BEPALINGEN")
2. Sections: formatted as "XX.YY TITLE" (e.g., "01.10 SECTIETITEL"), "XX.YY.ZZ TITLE" or even "XX.YY.ZZ.AA TITLE"

Your task is to identify both main chapters (00-93) and their sections, using the GLOBAL PDF page numbers (not the internal page numbers that appear within each document section).

IMPORTANT:
- Use the actual PDF page numbers, starting from 1 for the first page of the entire PDF
- IGNORE any page numbers printed within the document itself
- The page numbers in any table of contents (inhoudstafel) are UNRELIABLE - do not use them
- Determine page numbers by finding where each chapter actually begins and ends in the PDF
- Be EXTREMELY thorough in identifying ALL sections and subsections
- Don't miss any chapter or section - this is critical for accurate document processing`

// InitialSurveyPrompt primes the session with a whole-document pass before
// the window loop starts.
func InitialSurveyPrompt(totalPages int) string {
	return fmt.Sprintf(`I'll be analyzing a construction-specific PDF document with %d pages. First, I need you to provide me with a basic structure of this document.

The PDF is a technical construction document in Dutch/Flemish called a "lastenboek" (specification document). It contains chapters numbered like "XX. TITLE" (e.g., "00. ALGEMENE BEPALINGEN") and sections like "XX.YY TITLE".

Identify the main chapters (like 00, 01, 02, etc.) and their approximate page ranges. This will help me analyze the document in more detail with subsequent questions.

Format the response as a simple outline with page ranges.`, totalPages)
}

// emphasisLeadWindows is how many windows at each end of the document get
// extra instructions for catching start and end boundaries.
const emphasisLeadWindows = 3

// WindowPrompt builds the per-window analysis question.
func WindowPrompt(w Window, index, total int) string {
	var emphasis string
	switch {
	case index < emphasisLeadWindows:
		emphasis = "This is one of the first page ranges, so pay extra attention to identify the document structure and early chapters."
	case index >= total-emphasisLeadWindows:
		emphasis = "This is one of the final page ranges, so pay extra attention to identify any closing chapters or sections."
	}

	return fmt.Sprintf(`Analyze pages %[1]d-%[2]d of this PDF document and identify any chapters or sections that appear within these pages.

%[3]s

IMPORTANT INSTRUCTIONS:
- This document uses chapter numbering like "XX. TITLE" (e.g. "00. ALGEMENE BEPALINGEN")
- Sections are formatted as "XX.YY TITLE", subsections as "XX.YY.ZZ TITLE" or "XX.YY.ZZ.AA TITLE"
- Focus ONLY on pages %[1]d through %[2]d
- Use the GLOBAL PDF page numbers (starting from 1 for the first page of the PDF)
- IGNORE any page numbers printed within the document itself
- For each chapter/section, record its exact start page and end page
- The end page of a chapter/section is the page right before the next chapter/section begins
- If a chapter/section starts in this range but continues beyond page %[2]d, set the end page as %[2]d for now
- If a chapter/section ends in this range but started before page %[1]d, set the start page as %[1]d for now
- Be thorough, even for sections that appear to be brief

Respond with ONLY a JSON object in a fenced code block, like this:
`+"```json"+`
{
  "XX": {"start": 1, "end": 9, "title": "CHAPTER TITLE", "sections": {
    "XX.YY": {"start": 1, "end": 4, "title": "section title"},
    "XX.YY.ZZ": {"start": 2, "end": 3, "title": "subsection title"}
  }}
}
`+"```"+`

Include ONLY chapters or sections that appear within pages %[1]d-%[2]d. If none appear, respond with an empty object {}.`,
		w.Start, w.End, emphasis)
}
