package mocks

import (
	"context"

	"github.com/user/vidutil/pkg/ports"
)

// Muxer is a mock implementation of ports.Muxer.
type Muxer struct {
	MuxFunc func(ctx context.Context, req ports.MuxRequest) error

	Calls []ports.MuxRequest
}

func (m *Muxer) Mux(ctx context.Context, req ports.MuxRequest) error {
	m.Calls = append(m.Calls, req)
	if m.MuxFunc != nil {
		return m.MuxFunc(ctx, req)
	}
	return nil
}

var _ ports.Muxer = (*Muxer)(nil)

// MemoryReporter is a mock implementation of ports.MemoryReporter.
type MemoryReporter struct {
	RSS   uint64
	Err   error
	Calls int
}

func (m *MemoryReporter) ResidentSetSize() (uint64, error) {
	m.Calls++
	return m.RSS, m.Err
}

var _ ports.MemoryReporter = (*MemoryReporter)(nil)
