package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of wiki.Client
type Client struct {
	mock.Mock
}

func (m *Client) Exists(ctx context.Context, edition, title string) (bool, error) {
	args := m.Called(ctx, edition, title)
	return args.Bool(0), args.Error(1)
}

func (m *Client) Fetch(ctx context.Context, edition, title string) (string, error) {
	args := m.Called(ctx, edition, title)
	return args.String(0), args.Error(1)
}

func (m *Client) RedirectTarget(ctx context.Context, edition, title string) (string, error) {
	args := m.Called(ctx, edition, title)
	return args.String(0), args.Error(1)
}

func (m *Client) Sitelinks(ctx context.Context, edition, title string) (map[string]string, error) {
	args := m.Called(ctx, edition, title)
	if links, ok := args.Get(0).(map[string]string); ok {
		return links, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) SitelinksBatch(ctx context.Context, edition string, titles []string) (map[string]map[string]string, error) {
	args := m.Called(ctx, edition, titles)
	if links, ok := args.Get(0).(map[string]map[string]string); ok {
		return links, args.Error(1)
	}
	return nil, args.Error(1)
}
