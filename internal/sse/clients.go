// Package sse keeps the Server-Sent Events subscribers waiting for post reloads.
package sse

import (
	"sync"

	"github.com/debemdeboas/inkwell/internal/model"
)

const MsgReload = "reload"

type Client struct {
	Msg  chan string
	Slug model.Slug
}

func NewClient(slug model.Slug) *Client {
	return &Client{Msg: make(chan string, 1), Slug: slug}
}

type SSEClients struct {
	clients map[*Client]bool
	mu      sync.RWMutex
}

func NewSSEClients() *SSEClients {
	return &SSEClients{
		clients: make(map[*Client]bool),
	}
}

func (s *SSEClients) Add(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client] = true
}

func (s *SSEClients) Delete(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients[client] {
		delete(s.clients, client)
		close(client.Msg)
	}
}

func (s *SSEClients) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Broadcast sends msg to every client watching slug. Clients that are not keeping up miss the
// message instead of blocking the sender.
func (s *SSEClients) Broadcast(slug model.Slug, msg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for client := range s.clients {
		if client.Slug == slug {
			select {
			case client.Msg <- msg:
			default:
			}
		}
	}
}

// NotifyReload is a repository reload notifier.
func (s *SSEClients) NotifyReload(slug model.Slug) {
	s.Broadcast(slug, MsgReload)
}
