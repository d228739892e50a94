package prompter

import (
	"context"

	"screenplay-worker/domain/ports"
)

// StaticPrompter hands out a fixed list of spare keys, then cancels. Used
// by the headless worker, where no operator is present.
type StaticPrompter struct {
	spare []string
	next  int
}

var _ ports.CredentialPrompterPort = (*StaticPrompter)(nil)

func NewStaticPrompter(spareKeys []string) *StaticPrompter {
	return &StaticPrompter{spare: spareKeys}
}

func (p *StaticPrompter) RequestNewCredential(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.next >= len(p.spare) {
		return "", nil
	}
	key := p.spare[p.next]
	p.next++
	return key, nil
}
