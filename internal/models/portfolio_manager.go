package models

import (
	"sync"
)

// PortfolioManager serializes wallet/portfolio access per user.
// Uses per-user locks instead of one global lock, so trades by different
// users never block each other.
type PortfolioManager struct {
	userLocks map[int]*sync.Mutex // Map of user_id → mutex
	mapMutex  sync.RWMutex        // Protects the map itself
}

// NewPortfolioManager creates a new portfolio manager
func NewPortfolioManager() *PortfolioManager {
	return &PortfolioManager{
		userLocks: make(map[int]*sync.Mutex),
	}
}

// LockUser locks the wallet and portfolio for a specific user
func (pm *PortfolioManager) LockUser(userID int) {
	pm.mapMutex.Lock()

	if pm.userLocks[userID] == nil {
		pm.userLocks[userID] = &sync.Mutex{}
	}

	userMutex := pm.userLocks[userID]
	pm.mapMutex.Unlock()

	userMutex.Lock()
}

// UnlockUser unlocks the wallet and portfolio for a specific user
func (pm *PortfolioManager) UnlockUser(userID int) {
	pm.mapMutex.RLock()
	userMutex := pm.userLocks[userID]
	pm.mapMutex.RUnlock()

	if userMutex != nil {
		userMutex.Unlock()
	}
}
