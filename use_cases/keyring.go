package use_cases

import (
	"context"
	"fmt"
	"log/slog"

	"screenplay-worker/domain/ports"
)

// credentialRing walks a list of API keys in order, activating each on the
// generator. When the list runs out it asks the prompter for a fresh key
// and appends it, so later rotations in the same batch see it too.
type credentialRing struct {
	keys     []string
	index    int
	gen      ports.ScriptGeneratorPort
	prompter ports.CredentialPrompterPort
	onNewKey func(key string)
	logger   *slog.Logger
}

func newCredentialRing(keys []string, gen ports.ScriptGeneratorPort, prompter ports.CredentialPrompterPort) (*credentialRing, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("no api keys provided")
	}
	return &credentialRing{
		keys:     append([]string(nil), keys...),
		gen:      gen,
		prompter: prompter,
		logger:   slog.Default().With("component", "credential_ring"),
	}, nil
}

// activate binds the current key to the generator.
func (r *credentialRing) activate() error {
	return r.gen.UseCredential(r.keys[r.index])
}

// rotate advances past an exhausted key. When every known key is spent it
// blocks on the prompter; an empty answer surfaces as ErrUserCancelled.
func (r *credentialRing) rotate(ctx context.Context) error {
	r.index++
	if r.index < len(r.keys) {
		r.logger.Info("switching to next api key", "key_index", r.index)
		return r.activate()
	}

	r.logger.Warn("all api keys exhausted, requesting a new one")
	if r.prompter == nil {
		return ports.ErrUserCancelled
	}
	newKey, err := r.prompter.RequestNewCredential(ctx)
	if err != nil {
		return fmt.Errorf("credential prompt failed: %w", err)
	}
	if newKey == "" {
		return ports.ErrUserCancelled
	}

	r.keys = append(r.keys, newKey)
	r.index = len(r.keys) - 1
	if r.onNewKey != nil {
		r.onNewKey(newKey)
	}
	return r.activate()
}

// keyNumber is 1-based, for user-facing progress messages.
func (r *credentialRing) keyNumber() int {
	return r.index + 1
}
