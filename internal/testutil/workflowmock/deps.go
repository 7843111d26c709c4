// Package workflowmock holds function-backed mocks for the workflow
// usecase's collaborator interfaces (guard, uploader, publisher).
package workflowmock

import (
	"context"
	"sync"

	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/event"
)

type Guard struct {
	AcquireFn func(ctx context.Context, locationRef string, sector complaint.Sector) (func(), error)
}

func (m *Guard) Acquire(ctx context.Context, locationRef string, sector complaint.Sector) (func(), error) {
	if m.AcquireFn != nil {
		return m.AcquireFn(ctx, locationRef, sector)
	}
	return func() {}, nil
}

type Uploader struct {
	UploadFn func(ctx context.Context, filename string, data []byte) (string, error)
}

func (m *Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, filename, data)
	}
	return "https://img.example/" + filename, nil
}

// Publisher records every published event, synchronously.
type Publisher struct {
	mu     sync.Mutex
	Events []event.Event
}

func (m *Publisher) Publish(_ context.Context, ev event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, ev)
}

func (m *Publisher) Published() []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Event, len(m.Events))
	copy(out, m.Events)
	return out
}
