package prompts

// DefaultCodegenSystemPrompt is the system instruction used for code
// generation requests when the caller does not supply one.
const DefaultCodegenSystemPrompt = "You are an expert full-stack developer " +
	"with deep expertise in application architecture, API design, and secure, " +
	"production-quality code. Generate complete, working implementations."

// DefaultStageFocusTemplate appends a stage's focus to the base prompt for
// staged generation.
var DefaultStageFocusTemplate = NewPromptTemplate(
	"{base}\n\n## Current Focus\n{focus}\n\nGenerate only this part with complete implementation.",
)
