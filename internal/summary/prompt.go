package summary

import (
	"fmt"
	"strings"

	"paper-summary-api/internal/model"
)

const DefaultLanguage = "Japanese"

const unknownValue = "unknown"

// BuildSummaryPrompt returns the fixed instruction sent with the PDF.
func BuildSummaryPrompt(language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	var b strings.Builder
	b.WriteString("You are an expert at writing precise summaries of academic papers. ")
	fmt.Fprintf(&b, "Analyse the attached PDF in detail and summarise each item below in %s.\n\n", language)
	b.WriteString("Answer in exactly this format:\n\n")
	b.WriteString(MarkerTitle + " [title of the paper]\n")
	b.WriteString(MarkerAuthors + " [author names, comma-separated]\n")
	b.WriteString(MarkerAbstract + " [the abstract verbatim if present, otherwise inferred from the content]\n")
	b.WriteString(MarkerIntroduction + " [background, aims and prior work (about 300 characters)]\n")
	b.WriteString(MarkerMethods + " [methods, experimental design and data collection (about 300 characters)]\n")
	b.WriteString(MarkerResults + " [main results, findings and analysis (about 300 characters)]\n")
	b.WriteString(MarkerDiscussion + " [interpretation, discussion and significance (about 300 characters)]\n")
	b.WriteString(MarkerConclusion + " [conclusions, open problems and contribution (about 200 characters)]\n")
	b.WriteString(MarkerKeywords + " [5-10 main keywords, comma-separated]\n\n")
	b.WriteString("Include every item. If the paper has nothing for an item, write \"Not enough information\" in the requested language.\n")
	b.WriteString("Take figures, tables and charts into account as well.\n")
	return b.String()
}

// BuildPaperContext renders the stored summary fields a question is answered from.
func BuildPaperContext(p model.Paper) string {
	keywords := unknownValue
	if kw := p.KeywordList(); len(kw) > 0 {
		keywords = strings.Join(kw, ", ")
	}
	parts := []string{
		"Title: " + orUnknown(p.Title),
		"Authors: " + orUnknown(p.Authors),
		"Abstract: " + orUnknown(p.Abstract),
		"Background and aims: " + orUnknown(p.SummaryIntroduction),
		"Methods: " + orUnknown(p.SummaryMethods),
		"Results: " + orUnknown(p.SummaryResults),
		"Discussion: " + orUnknown(p.SummaryDiscussion),
		"Conclusion: " + orUnknown(p.SummaryConclusion),
		"Keywords: " + keywords,
	}
	return strings.Join(parts, "\n\n")
}

// BuildQuestionPrompt wraps the paper context and the user's question.
func BuildQuestionPrompt(paperContext, question, language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	var b strings.Builder
	b.WriteString("Below is summary information about an academic paper. Answer the question about this paper.\n\n")
	b.WriteString("Paper information:\n")
	b.WriteString(paperContext)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nWhen answering:\n")
	b.WriteString("1. Answer accurately, based on the content of the paper.\n")
	b.WriteString("2. If something cannot be determined, say that it cannot be determined from this paper.\n")
	b.WriteString("3. Briefly explain technical terms.\n")
	fmt.Fprintf(&b, "4. Answer clearly in %s.\n", language)
	b.WriteString("5. Point to the part of the paper that supports the answer.\n\n")
	b.WriteString("Answer:\n")
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownValue
	}
	return s
}
