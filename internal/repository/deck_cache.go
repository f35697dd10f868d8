package repository

import (
	"sync"

	"lorcana/internal/models"
)

// DeckCache keeps deck metadata by owner and id. Decks are immutable once
// created, so only deletion invalidates an entry.
type DeckCache struct {
	mu    sync.RWMutex
	cache map[string]models.Deck // owner/deck id -> deck
}

func NewDeckCache() *DeckCache {
	return &DeckCache{
		cache: make(map[string]models.Deck),
	}
}

func deckKey(ownerID, deckID string) string {
	return ownerID + "/" + deckID
}

func (c *DeckCache) Get(ownerID, deckID string) (models.Deck, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, found := c.cache[deckKey(ownerID, deckID)]
	return d, found
}

func (c *DeckCache) Set(d models.Deck) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[deckKey(d.OwnerID, d.ID)] = d
}

func (c *DeckCache) Delete(ownerID, deckID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, deckKey(ownerID, deckID))
}
