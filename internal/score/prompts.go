package score

// detectInstruction is the shared detection prompt for the generative
// backends. The backends differ only in how strictly the provider can be
// held to the JSON contract, which each adapter compensates for.
const detectInstruction = `You are an expert at analyzing AI-generated text. Judge the probability (0-100) that the given text was written by an AI such as ChatGPT.

Analyze against these signals:
- repetitive phrases or patterns
- impersonal, characterless style
- overly formal structure
- unnatural expressions

Respond with JSON in exactly this shape:
{
  "score": (integer between 0 and 100),
  "reason": "(one short sentence explaining the call)"
}`

// userPrompt wraps the article text, truncated to the shared prefix bound.
func userPrompt(text string) string {
	return "Analyze the following text and provide the AI generation probability score based on the criteria provided:\n" +
		"--- TEXT BEGIN ---\n" + truncate(text) + "\n--- TEXT END ---"
}
