package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"sangbangcopy/backend/internal/features/copywriting/domain"
)

// Language selects which side of the bilingual pair a prompt targets. The
// Korean variants enforce keyword constraints, the English variants enforce
// translation-rule awareness instead.
type Language string

const (
	LangKorean  Language = "ko"
	LangEnglish Language = "en"
)

// BuildURLExtractionPrompt asks the model to act as if it were browsing the
// product page, skipping the first (promotional) and last (shipping/company)
// description images and consolidating the Korean text of the ones between.
func BuildURLExtractionPrompt(url string) string {
	return fmt.Sprintf(`You are an expert at analyzing e-commerce product pages from the website koreasang.co.kr.
Your task is to analyze the product page at this URL: %s
Imagine you are viewing the detailed product description, which consists of multiple images.
Please IGNORE the very first main promotional image at the top of the description section, and also IGNORE the very last image which is typically about shipping and company information.
Focus ONLY on the images in between these two.
Extract all Korean text from these middle images.
Consolidate all the extracted text into a single block of text.`, url)
}

// BuildImageExtractionPrompt is the text part of the multi-part image request.
func BuildImageExtractionPrompt() string {
	return "You are an expert at analyzing product images. From the following images, extract all Korean text. Additionally, describe the key visual features of the product shown. Consolidate all extracted text and visual descriptions into a single, cohesive block of text."
}

// BuildKoreanCopyPrompt assembles the full copy-generation prompt. The
// learning context grounds the mandatory first (cultural introduction)
// section; the extracted text is the sole source of truth for everything
// after it. Structural rules live in the prompt, not in code.
func BuildKoreanCopyPrompt(extractedText, learningContext string, requiredKeywords []string, briefDescription string) string {
	var sb strings.Builder

	sb.WriteString("You are a world-class marketing copywriter for '박씨상방', a premium store specializing in traditional Korean crafts.\n")
	sb.WriteString("Your task is to create highly persuasive marketing copy based on text extracted from a product's description images and user-provided information.\n")
	sb.WriteString("The final output must be a single JSON object with two keys: \"mainTitle\" and \"sections\".\n")
	sb.WriteString("- \"mainTitle\": A single, compelling, and representative title for the entire product. It should be concise and capture the product's essence.")
	if len(requiredKeywords) > 0 {
		fmt.Fprintf(&sb, " **CRITICAL: This title MUST include the following keywords: %s.**", strings.Join(requiredKeywords, ", "))
	}
	sb.WriteString("\n")
	sb.WriteString("- \"sections\": An array of objects, each with a 'title' and 'content' detailing different aspects of the product.\n")

	if strings.TrimSpace(briefDescription) != "" {
		sb.WriteString("\n**User's Brief Description (Important Context):**\n")
		sb.WriteString("Use this description as a key reference to understand the product's core message and tone when creating all sections of the copy.\n")
		sb.WriteString("---\n")
		sb.WriteString(briefDescription)
		sb.WriteString("\n---\n")
	}

	sb.WriteString(`
**Core Directives:**
1.  **Structure and Content Flow:**
    *   **Total Sections:** You must generate AT LEAST FIVE distinct sections.
    *   **First Section (Introduction):** The very first section must serve as an introduction to the cultural context of the craft. Use the "background information" provided about our brand and Korean culture to write this section. For example, if the product is '나전칠기' (Najeonchilgi), this section should explain what Najeonchilgi is, its history, and its value. This section sets the stage before diving into the specific product details.
    *   **Subsequent Sections (Product Details):** All sections after the first one must be based strictly on the "Extracted Text", detailing the specific features, design, and benefits of the product.

2.  **Prioritize Text, Supplement with Imagery:** Your creative process must be strictly text-first.
    *   **Step 1 (Analyze Text):** Thoroughly analyze the provided "Extracted Text". This is your single source of truth for the product-specific sections (sections 2 onwards). Every feature, benefit, and detail you write about MUST originate from this text.
    *   **Step 2 (Enrich with Imagery):** After grounding your understanding in the text, you may then use your knowledge of the product type to infer and describe logical visual details that would be in the images. This is to make the copy more vivid. For example, if the text mentions "자개" (mother-of-pearl), you can describe its "iridescent shine". This is a valid enrichment. However, if the text does not mention a "wooden box", you CANNOT add a description of one. This is inventing new facts.

3.  **Section Titles:**
    *   **Goal:** Create direct, powerful, and intriguing titles that highlight a specific product feature or benefit. They should be short, impactful, and grounded in the product's details.
    *   **Style:** Think of them as bold statements or compelling headers, not abstract or emotional questions.
    *   **WHAT TO AVOID (CRITICAL):**
        *   **Do not create illogical connections.** For example, do not claim that a product's size (e.g., "16cm") proves an abstract concept like an artisan's "devotion" (정성). This is nonsensical. A title like "장인의 '정성', 숫자로 증명합니다" is a bad example and must be avoided.
        *   **Do not use overly emotional, vague, or poetic phrases.** Avoid titles like "빛을 담은 보석함, 보셨나요?" (Have you seen the jewelry box that holds light?) or "당신의 가장 소중한 것은 무엇인가요?" (What is your most precious thing?). They are awkward and ineffective.
    *   **Good Example Direction:** Instead of a bad title like "장인의 '정성', 숫자로 증명합니다", a better title for content about size and detail might be "16cm 안에 담긴 디테일의 차이" (The difference in detail, contained within 16cm) or "작지만 완벽한, 모든 각도의 자신감" (Small but perfect, confidence from every angle).

4.  **Content:** Write in a simple, easy-to-understand style that resonates with a broad audience. Focus on the product's benefits, unique story, and the feeling it evokes.

5.  **Factual Accuracy:** This is CRITICAL. For sections 2 onwards, base your description ONLY on the provided "Extracted Text". DO NOT invent details about packaging, shipping methods, or included items (e.g., do not say "it comes in a luxurious silk box" or "we provide careful packaging") unless this information is explicitly stated in the extracted text. Stick to describing the product itself—its features, materials, artistry, and emotional value.

Here is some background information about our brand and Korean culture that you should use for the **first section** and to enrich the overall copy:
---
`)
	sb.WriteString(learningContext)
	sb.WriteString(`
---

Now, using the following extracted text for **sections 2 and onwards**, generate the marketing copy.
Extracted Text:
---
`)
	sb.WriteString(extractedText)
	sb.WriteString("\n---\n")

	return sb.String()
}

// BuildTranslationPrompt embeds the Korean copy as structured data together
// with the literal substitution table and asks for a structure-preserving
// translation.
func BuildTranslationPrompt(koreanCopy domain.GeneratedCopy, rules map[string]string) string {
	rulesJSON, _ := json.MarshalIndent(rules, "", "  ")
	copyJSON, _ := json.MarshalIndent(koreanCopy, "", "  ")

	return fmt.Sprintf(`Translate the following Korean marketing copy into English.
The copy is provided as a JSON object. You must return the translated content in the exact same JSON structure, including both the "mainTitle" and all "sections".

**CRITICAL INSTRUCTION:** You MUST follow these specific custom translation rules. If you encounter a Korean word from this list, you MUST use its provided English translation.
Custom Translation Rules:
---
%s
---

Now, translate this JSON content:
---
%s
---`, rulesJSON, copyJSON)
}

// BuildMainTitlePrompt asks for one alternative main title. The Korean
// variant carries the keyword constraint and brief description; the English
// variant carries the translation rules instead.
func BuildMainTitlePrompt(existing domain.GeneratedCopy, lang Language, requiredKeywords []string, briefDescription string, rules map[string]string) string {
	sectionsJSON, _ := json.MarshalIndent(existing.Sections, "", "  ")

	if lang == LangKorean {
		var sb strings.Builder
		sb.WriteString("You are a world-class marketing copywriter for '박씨상방', a premium store specializing in traditional Korean crafts.\n")
		fmt.Fprintf(&sb, "I have a product description with the main title: %q.\n", existing.MainTitle)
		sb.WriteString("I need a new, alternative main title for this product.\n")
		sb.WriteString("The new title must be compelling, representative, and different from the current one.\n")
		if len(requiredKeywords) > 0 {
			fmt.Fprintf(&sb, "**CRITICAL: The new title MUST include the following keywords: %s.**\n", strings.Join(requiredKeywords, ", "))
		}
		sb.WriteString("\nFor context, here is the user's brief description:\n---\n")
		sb.WriteString(briefDescription)
		sb.WriteString("\n---\n\nAnd here is the full product description copy:\n---\n")
		sb.Write(sectionsJSON)
		sb.WriteString("\n---\n\nGenerate ONLY the new main title as a single string of plain text, without any formatting like quotes or labels.")
		return sb.String()
	}

	rulesJSON, _ := json.MarshalIndent(rules, "", "  ")
	return fmt.Sprintf(`You are a world-class marketing copywriter.
I have an English product description. The current main title is: %q.
I need a new, alternative main title for this product.
The new title must be compelling, representative, and different from the current one.

**CRITICAL INSTRUCTION:** Be mindful of these custom translation rules if relevant words appear.
Custom Translation Rules:
---
%s
---

For context, here is the full English description:
---
%s
---

Generate ONLY the new main title as a single string of plain text, without any formatting like quotes or labels.`, existing.MainTitle, rulesJSON, sectionsJSON)
}

// BuildSectionTitlePrompt asks for one alternative section title, given the
// section's content and the overall main title for context.
func BuildSectionTitlePrompt(sectionContent, mainTitle string, lang Language, rules map[string]string) string {
	if lang == LangKorean {
		return fmt.Sprintf(`You are a world-class marketing copywriter for '박씨상방'.
I have a section of a product description and I need a new, alternative title for it.

**Context:**
- Product Main Title: %q
- Section Content: %q

**Guidelines for the new title (CRITICAL):**
- **Goal:** Create a direct, powerful, and intriguing title that highlights a specific product feature or benefit from the content.
- **Style:** Short, impactful, and grounded in the product's details.
- **WHAT TO AVOID (CRITICAL):**
    *   **Do not create illogical connections.** (e.g., claiming size proves devotion).
    *   **Do not use overly emotional, vague, or poetic phrases.** (e.g., "Have you seen the jewelry box that holds light?").
- **Good Example Direction:** A title for content about size and detail might be "16cm 안에 담긴 디테일의 차이" (The difference in detail, contained within 16cm).

Generate ONLY the new section title as a single string of plain text, without any formatting like quotes or labels.`, mainTitle, sectionContent)
	}

	rulesJSON, _ := json.MarshalIndent(rules, "", "  ")
	return fmt.Sprintf(`You are a world-class marketing copywriter.
I have a section of an English product description. I need a new, alternative title for it.

**Context:**
- Product Main Title: %q
- Section Content: %q

**Guidelines for the new title:**
- **Goal:** Create a direct, powerful, and intriguing title.
- **Style:** Short and impactful.

**CRITICAL INSTRUCTION:** Be mindful of these custom translation rules if relevant words appear.
Custom Translation Rules:
---
%s
---

Generate ONLY the new section title as a single string of plain text, without any formatting like quotes or labels.`, mainTitle, sectionContent, rulesJSON)
}
