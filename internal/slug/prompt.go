package slug

import "fmt"

const (
	promptTemplate = "A highly detailed, photorealistic close-up photograph of a %s garden slug, " +
		"professional nature photography, macro lens, perfect lighting, shallow depth of field, " +
		"National Geographic style, 8k resolution, detailed texture, glistening mucus trail, " +
		"on a green leaf background, sharp focus"

	descriptionTemplate = "Meet your slug twin! A %s slug that shares your unique essence!"
)

// PromptResult carries the generation prompt together with the texts shown
// to the user.
type PromptResult struct {
	Prompt          string `json:"prompt"`
	Description     string `json:"description"`
	Characteristics string `json:"characteristics"`
}

// ComposePrompt renders the photographic prompt and the user facing
// description for c.
func ComposePrompt(c Characteristics) PromptResult {
	text := c.String()
	return PromptResult{
		Prompt:          fmt.Sprintf(promptTemplate, text),
		Description:     fmt.Sprintf(descriptionTemplate, text),
		Characteristics: text,
	}
}

// Derive maps image bytes to the prompt of their slug twin.
func Derive(data []byte) PromptResult {
	return ComposePrompt(Analyze(data))
}
