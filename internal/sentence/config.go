package sentence

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order; the first failure stops the pipeline.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorSentences caps the "already shown" list in the prompt.
	MaxPriorSentences int

	// Retries is how many extra requests are made when a response fails a
	// retryable validator. After the last one, a pair that only violates
	// the character set is returned with Outside populated.
	Retries int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&CharsetValidator{},
		},
		MaxTokens:         256,
		Temperature:       0.8,
		MaxPriorSentences: 10,
		Retries:           2,
	}
}
