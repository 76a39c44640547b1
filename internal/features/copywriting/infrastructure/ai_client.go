package infrastructure

import (
	"context"

	"sangbangcopy/backend/internal/features/copywriting/domain"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// AIClient abstracts the hosted generative model. Implementations perform no
// retries and no timeouts of their own; failures surface verbatim to the
// caller.
type AIClient interface {
	// GenerateText submits a plain prompt and returns the trimmed response.
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	// GenerateStructured submits a prompt constrained to a JSON response.
	// A non-nil schema requests strict schema validation; nil requests a
	// free-shape JSON object. The raw JSON text is returned unparsed.
	GenerateStructured(ctx context.Context, model, prompt string, schema *jsonschema.Definition) (string, error)
	// GenerateWithImages submits a multi-part request: one text instruction
	// followed by one encoded part per image, in input order.
	GenerateWithImages(ctx context.Context, model, prompt string, images []domain.ImageFile) (string, error)
}
