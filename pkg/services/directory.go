package services

import (
	"invoicer/pkg/models"
)

// ClientDirectory looks up the clients an invoice can be billed to
type ClientDirectory interface {
	// Client returns the client with the given ID. Implementations may
	// accept more than one ID form.
	Client(id string) (*models.Client, bool)

	// Clients returns every client in display order.
	Clients() []models.Client
}
