package llm

import (
	"context"

	"golang.org/x/sync/semaphore"
)

type limitedClient struct {
	next Client
	sem  *semaphore.Weighted
}

// Limit bounds the number of concurrent calls made through c.
// Callers wait for a free slot until their context is done.
func Limit(c Client, n int64) Client {
	return &limitedClient{next: c, sem: semaphore.NewWeighted(n)}
}

func (l *limitedClient) acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return NewError(KindTransport, err, "LLM request cancelled while waiting for a free slot: %v", err)
	}
	return nil
}

func (l *limitedClient) GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	if err := l.acquire(ctx); err != nil {
		return "", err
	}
	defer l.sem.Release(1)
	return l.next.GenerateStructured(ctx, prompt, schema)
}

func (l *limitedClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := l.acquire(ctx); err != nil {
		return "", err
	}
	defer l.sem.Release(1)
	return l.next.GenerateText(ctx, prompt)
}

func (l *limitedClient) ModelName() string {
	return l.next.ModelName()
}
